package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-parkir-backend/internal/model"
	"smart-parkir-backend/internal/store"
)

// spotResponse is a spot snapshot enriched for operators: an available spot
// whose sensor is faulted needs attention even though it stays allocatable.
type spotResponse struct {
	model.Spot
	NeedsAttention bool `json:"needsAttention"`
}

func toSpotResponse(s model.Spot) spotResponse {
	return spotResponse{
		Spot:           s,
		NeedsAttention: s.Status == model.SpotAvailable && s.SensorStatus == model.SensorFaulted,
	}
}

// GetSpots handles GET /api/spots with optional class and status filters.
func (h *Handler) GetSpots(c *gin.Context) {
	var f store.SpotFilter
	if v := c.Query("class"); v != "" {
		class := model.VehicleClass(v)
		if !class.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle class"})
			return
		}
		f.Class = class
	}
	if v := c.Query("status"); v != "" {
		status := model.SpotStatus(v)
		if !status.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid spot status"})
			return
		}
		f.Status = status
	}

	spots, err := h.store.ListSpots(c.Request.Context(), f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve spots"})
		return
	}

	responses := make([]spotResponse, 0, len(spots))
	for _, s := range spots {
		responses = append(responses, toSpotResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}

// GetSpot handles GET /api/spots/:spot_id.
func (h *Handler) GetSpot(c *gin.Context) {
	spot, err := h.store.GetSpot(c.Request.Context(), c.Param("spot_id"))
	if err != nil {
		c.AbortWithStatusJSON(statusForError(err), gin.H{"error": "spot not found"})
		return
	}
	c.JSON(http.StatusOK, toSpotResponse(spot))
}

type patchSpotRequest struct {
	Status       *model.SpotStatus   `json:"status"`
	SensorStatus *model.SensorStatus `json:"sensorStatus"`
}

// PatchSpot handles PATCH /api/spots/:spot_id for operational and sensor
// status changes. Occupancy itself is never settable here.
func (h *Handler) PatchSpot(c *gin.Context) {
	var req patchSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == nil && req.SensorStatus == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	// Validate everything before applying anything, so a request that is
	// partly invalid mutates no state.
	if req.SensorStatus != nil && !req.SensorStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor status"})
		return
	}

	spotID := c.Param("spot_id")
	ctx := c.Request.Context()

	mutated := false
	defer func() {
		if mutated {
			h.invalidate()
		}
	}()

	if req.Status != nil {
		if err := h.engine.SetOperationalStatus(ctx, spotID, *req.Status); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		mutated = true
	}
	if req.SensorStatus != nil {
		if err := h.engine.SetSensorStatus(ctx, spotID, *req.SensorStatus); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		mutated = true
	}

	spot, err := h.store.GetSpot(ctx, spotID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "spot not found"})
		return
	}
	c.JSON(http.StatusOK, toSpotResponse(spot))
}
