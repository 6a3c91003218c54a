package handlers

import (
	"net/http"

	"radarboard/internal/database"
	"radarboard/internal/dto"

	"github.com/gin-gonic/gin"
)

// ===========================================================================
// Health Handler
// Liveness plus the database connectivity state from the watcher. Degraded
// connectivity answers 200: the service keeps serving cached snapshots and
// the client shows a banner instead of failing over.
// ===========================================================================

// HealthHandler handles the health endpoint
type HealthHandler struct {
	watcher *database.HealthWatcher
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(watcher *database.HealthWatcher) *HealthHandler {
	return &HealthHandler{watcher: watcher}
}

// Health returns the service state
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Success(gin.H{
		"status":     "ok",
		"database":   h.watcher.Status(),
		"last_check": h.watcher.LastCheck(),
	}))
}

// RegisterRoutes registers the health route on the engine root
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
}
