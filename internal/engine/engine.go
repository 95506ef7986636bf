// Package engine implements the parking occupancy state machine. Per spot
// the cycle is Available → Occupied → Available, with an operator-controlled
// side branch Available ⇄ OutOfService that excludes entry. All mutations go
// through the Engine; the store only persists transitions the Engine has
// already validated.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smart-parkir-backend/internal/durasi"
	"smart-parkir-backend/internal/model"
	"smart-parkir-backend/internal/store"
	"smart-parkir-backend/internal/token"
)

// maxTokenAttempts bounds regeneration when a freshly generated token
// collides with an active session.
const maxTokenAttempts = 5

// Clock supplies the current time. Mutating operations read it exactly once
// so a register/release pair always computes duration from the same two
// instants.
type Clock func() time.Time

// RegisterRequest carries the caller-supplied fields for a new session.
type RegisterRequest struct {
	Plate      string
	Class      model.VehicleClass
	OwnerName  string
	RoomID     string
	CustomerID string
}

// Engine owns all occupancy state transitions. Mutating operations serialize
// under one mutex so a register and a concurrent release on the same spot
// cannot interleave; the loser observes the updated status and fails its
// precondition.
type Engine struct {
	mu       sync.Mutex
	store    store.Store
	tokens   token.Generator
	clock    Clock
	released func(spotID string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock, for deterministic tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithReleaseHook registers a callback invoked after a spot becomes
// available. Used to dispatch push notifications; must not block.
func WithReleaseHook(fn func(spotID string)) Option {
	return func(e *Engine) { e.released = fn }
}

// New creates an occupancy engine on top of the given store.
func New(s store.Store, gen token.Generator, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		tokens: gen,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindAvailableSpots returns the available spots matching the vehicle class,
// in inventory order. It presents choices only and reserves nothing.
func (e *Engine) FindAvailableSpots(ctx context.Context, class model.VehicleClass) ([]model.Spot, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle class %q", ErrSpotUnavailable, class)
	}
	return e.store.ListSpots(ctx, store.SpotFilter{Class: class, Status: model.SpotAvailable})
}

// RegisterVehicle starts a parking session on the given spot. The spot must
// be available and of the same class as the vehicle. The returned Vehicle
// carries the generated exit-validation token.
func (e *Engine) RegisterVehicle(ctx context.Context, spotID string, req RegisterRequest) (model.Vehicle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !req.Class.Valid() {
		return model.Vehicle{}, fmt.Errorf("%w: unknown vehicle class %q", ErrSpotUnavailable, req.Class)
	}

	spot, err := e.getSpot(ctx, spotID)
	if err != nil {
		return model.Vehicle{}, err
	}
	if spot.Status != model.SpotAvailable {
		return model.Vehicle{}, fmt.Errorf("%w: spot %s is %s", ErrSpotUnavailable, spot.Label, spot.Status)
	}
	if spot.Class != req.Class {
		return model.Vehicle{}, fmt.Errorf("%w: spot %s takes %s vehicles, got %s",
			ErrSpotUnavailable, spot.Label, spot.Class, req.Class)
	}

	code, err := e.uniqueToken(ctx)
	if err != nil {
		return model.Vehicle{}, err
	}

	v := model.Vehicle{
		ID:         uuid.NewString(),
		SpotID:     spot.ID,
		Plate:      req.Plate,
		Class:      req.Class,
		OwnerName:  req.OwnerName,
		RoomID:     req.RoomID,
		EntryTime:  e.clock(),
		CustomerID: req.CustomerID,
		Token:      code,
	}
	if err := e.store.PlaceVehicle(ctx, spot.ID, v); err != nil {
		return model.Vehicle{}, err
	}
	return v, nil
}

// ReleaseVehicle closes the session on the given spot, appends the history
// record and frees the spot.
func (e *Engine) ReleaseVehicle(ctx context.Context, spotID string) (model.HistoryRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	spot, err := e.getSpot(ctx, spotID)
	if err != nil {
		return model.HistoryRecord{}, err
	}
	return e.releaseLocked(ctx, spot)
}

// ValidateToken looks up the occupied spot whose active session carries the
// token. A miss is a normal query outcome, reported via found=false; only
// blank input is an error.
func (e *Engine) ValidateToken(ctx context.Context, code string) (model.Spot, bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Spot{}, false, ErrEmptyToken
	}
	return e.store.FindSpotByToken(ctx, code)
}

// ConfirmExit validates the token and releases the matched spot.
func (e *Engine) ConfirmExit(ctx context.Context, code string) (model.HistoryRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	code = strings.TrimSpace(code)
	if code == "" {
		return model.HistoryRecord{}, ErrEmptyToken
	}

	spot, found, err := e.store.FindSpotByToken(ctx, code)
	if err != nil {
		return model.HistoryRecord{}, err
	}
	if !found {
		return model.HistoryRecord{}, fmt.Errorf("%w: %s", ErrTokenNotFound, code)
	}
	return e.releaseLocked(ctx, spot)
}

// SetOperationalStatus moves a spot between Available and OutOfService.
// Occupied spots may only change through the release path, and Occupied
// itself is never an operator-settable target.
func (e *Engine) SetOperationalStatus(ctx context.Context, spotID string, status model.SpotStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if status != model.SpotAvailable && status != model.SpotOutOfService {
		return fmt.Errorf("%w: %q is not an operator-settable status", ErrInvalidTransition, status)
	}

	spot, err := e.getSpot(ctx, spotID)
	if err != nil {
		return err
	}
	if spot.Status == model.SpotOccupied || spot.Vehicle != nil {
		return fmt.Errorf("%w: spot %s has a parked vehicle", ErrInvalidTransition, spot.Label)
	}
	return e.store.UpdateSpotStatus(ctx, spot.ID, status)
}

// SetSensorStatus records the sensor health of a spot. Informational only;
// it never affects allocation eligibility.
func (e *Engine) SetSensorStatus(ctx context.Context, spotID string, status model.SensorStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown sensor status %q", status)
	}

	err := e.store.UpdateSensorStatus(ctx, spotID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrSpotNotFound, spotID)
	}
	return err
}

// releaseLocked performs the Occupied → Available transition. Callers hold
// the engine mutex.
func (e *Engine) releaseLocked(ctx context.Context, spot model.Spot) (model.HistoryRecord, error) {
	if spot.Status != model.SpotOccupied || spot.Vehicle == nil {
		return model.HistoryRecord{}, fmt.Errorf("%w: spot %s", ErrSpotNotOccupied, spot.Label)
	}

	v := *spot.Vehicle
	now := e.clock()
	rec := model.HistoryRecord{
		ID:         v.ID,
		Plate:      v.Plate,
		Class:      v.Class,
		OwnerName:  v.OwnerName,
		RoomID:     v.RoomID,
		EntryTime:  v.EntryTime,
		CustomerID: v.CustomerID,
		Token:      v.Token,
		ExitTime:   &now,
		Duration:   durasi.Format(v.EntryTime, now),
	}
	if err := e.store.ClearSpot(ctx, spot.ID, rec); err != nil {
		return model.HistoryRecord{}, err
	}

	if e.released != nil {
		e.released(spot.ID)
	}
	return rec, nil
}

func (e *Engine) getSpot(ctx context.Context, spotID string) (model.Spot, error) {
	spot, err := e.store.GetSpot(ctx, spotID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Spot{}, fmt.Errorf("%w: %s", ErrSpotNotFound, spotID)
	}
	if err != nil {
		return model.Spot{}, fmt.Errorf("failed to load spot %s: %w", spotID, err)
	}
	return spot, nil
}

// uniqueToken generates a token unused by any active session, retrying on
// collision up to the attempt budget.
func (e *Engine) uniqueToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		code, err := e.tokens.Token()
		if err != nil {
			return "", fmt.Errorf("token generation failed: %w", err)
		}
		inUse, err := e.store.TokenInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrTokenCollision, maxTokenAttempts)
}
