package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetCustomers handles GET /api/customers.
func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.store.ListCustomers(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/customers/:customer_id.
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.store.FindCustomer(c.Request.Context(), c.Param("customer_id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetGuards handles GET /api/guards.
func (h *Handler) GetGuards(c *gin.Context) {
	guards, err := h.store.ListGuards(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve guards"})
		return
	}
	c.JSON(http.StatusOK, guards)
}

// GetGuard handles GET /api/guards/:guard_id.
func (h *Handler) GetGuard(c *gin.Context) {
	guard, err := h.store.FindGuard(c.Request.Context(), c.Param("guard_id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "guard not found"})
		return
	}
	c.JSON(http.StatusOK, guard)
}
