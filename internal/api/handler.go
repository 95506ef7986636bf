package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"smart-parkir-backend/internal/engine"
	"smart-parkir-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	engine   *engine.Engine
	apiCache *cache.Cache
	webpush  *webpush.Options
	loc      *time.Location
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, eng *engine.Engine, apiCache *cache.Cache, webpushOptions *webpush.Options, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		store:    s,
		engine:   eng,
		apiCache: apiCache,
		webpush:  webpushOptions,
		loc:      loc,
	}
}

// invalidate drops all cached GET responses after a state mutation.
func (h *Handler) invalidate() {
	if h.apiCache != nil {
		h.apiCache.Flush()
	}
}

// statusForError maps engine sentinels to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrSpotNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrTokenNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrSpotUnavailable),
		errors.Is(err, engine.ErrSpotNotOccupied),
		errors.Is(err, engine.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, engine.ErrEmptyToken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// dayBounds returns the [start, end) window of the calendar day containing
// the given date in the handler's timezone.
func (h *Handler) dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.In(h.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, h.loc)
	return start, start.AddDate(0, 0, 1)
}
