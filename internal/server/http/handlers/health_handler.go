package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports service health.
type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
	now    func() time.Time
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger, now: time.Now}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, database, code := "healthy", "connected", http.StatusOK
	if err := h.facade.HealthCheck(ctx); err != nil {
		h.logger.Error("health check failed", slog.String("error", err.Error()))
		status, database, code = "unhealthy", "disconnected", http.StatusServiceUnavailable
	}

	environment := os.Getenv(gin.EnvGinMode)
	if environment == "" {
		environment = gin.Mode()
	}

	c.JSON(code, gin.H{
		"status":      status,
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"environment": environment,
		"dependencies": gin.H{
			"database": database,
		},
	})
}
