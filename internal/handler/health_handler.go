package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equitylens/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	svc service.StatementService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(svc service.StatementService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.svc.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "analysis store not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
