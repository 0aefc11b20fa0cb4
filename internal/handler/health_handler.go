package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimlens/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store port.DocumentStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store port.DocumentStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	count, err := h.store.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "documents_stored": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "documents_stored": count})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := h.store.Count(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "document store not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
