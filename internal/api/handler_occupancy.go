package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-parkir-backend/internal/engine"
	"smart-parkir-backend/internal/model"
	"smart-parkir-backend/internal/store"
)

type registerVehicleRequest struct {
	Plate      string             `json:"plate" binding:"required"`
	Class      model.VehicleClass `json:"class" binding:"required"`
	OwnerName  string             `json:"ownerName" binding:"required"`
	RoomID     string             `json:"roomId" binding:"required"`
	CustomerID string             `json:"customerId"`
}

// RegisterVehicle handles POST /api/spots/:spot_id/vehicle.
func (h *Handler) RegisterVehicle(c *gin.Context) {
	var req registerVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Class.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle class"})
		return
	}

	v, err := h.engine.RegisterVehicle(c.Request.Context(), c.Param("spot_id"), engine.RegisterRequest{
		Plate:      req.Plate,
		Class:      req.Class,
		OwnerName:  req.OwnerName,
		RoomID:     req.RoomID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.invalidate()
	c.JSON(http.StatusCreated, v)
}

// ReleaseVehicle handles DELETE /api/spots/:spot_id/vehicle, the manual
// release path used by guards from the dashboard.
func (h *Handler) ReleaseVehicle(c *gin.Context) {
	rec, err := h.engine.ReleaseVehicle(c.Request.Context(), c.Param("spot_id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.invalidate()
	c.JSON(http.StatusOK, rec)
}

// ValidateToken handles GET /api/tokens/:token. A token with no active
// session is a normal miss, answered 404 with found=false rather than an
// error payload.
func (h *Handler) ValidateToken(c *gin.Context) {
	spot, found, err := h.engine.ValidateToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "spot": toSpotResponse(spot)})
}

type confirmExitRequest struct {
	Token string `json:"token" binding:"required"`
}

// ConfirmExit handles POST /api/exits: validate the token, then release the
// matched spot.
func (h *Handler) ConfirmExit(c *gin.Context) {
	var req confirmExitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.engine.ConfirmExit(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.invalidate()
	c.JSON(http.StatusOK, rec)
}

// GetActiveVehicles handles GET /api/vehicles: every active session with its
// spot label.
func (h *Handler) GetActiveVehicles(c *gin.Context) {
	spots, err := h.store.ListSpots(c.Request.Context(), store.SpotFilter{Status: model.SpotOccupied})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve vehicles"})
		return
	}

	type activeVehicle struct {
		SpotID    string `json:"spotId"`
		SpotLabel string `json:"spotLabel"`
		model.Vehicle
	}
	vehicles := make([]activeVehicle, 0, len(spots))
	for _, s := range spots {
		if s.Vehicle == nil {
			continue
		}
		vehicles = append(vehicles, activeVehicle{SpotID: s.ID, SpotLabel: s.Label, Vehicle: *s.Vehicle})
	}
	c.JSON(http.StatusOK, vehicles)
}
