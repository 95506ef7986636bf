package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smart-parkir-backend/internal/report"
	"smart-parkir-backend/internal/store"
)

// GetHistory handles GET /api/history with optional date and room filters.
// Records come back in ledger order, most recent first.
func (h *Handler) GetHistory(c *gin.Context) {
	var f store.HistoryFilter

	if v := c.Query("date"); v != "" {
		date, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		f.Start, f.End = h.dayBounds(date)
	}
	f.Room = c.Query("room")

	records, err := h.store.ListHistory(c.Request.Context(), f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetDailyReport handles GET /api/reports/daily, defaulting to today in the
// configured timezone.
func (h *Handler) GetDailyReport(c *gin.Context) {
	date := time.Now().In(h.loc)
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.loc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	ctx := c.Request.Context()
	start, end := h.dayBounds(date)

	records, err := h.store.ListHistory(ctx, store.HistoryFilter{Start: start, End: end})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve history"})
		return
	}
	spots, err := h.store.ListSpots(ctx, store.SpotFilter{})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve spots"})
		return
	}

	c.JSON(http.StatusOK, report.BuildDaily(start, spots, records))
}
