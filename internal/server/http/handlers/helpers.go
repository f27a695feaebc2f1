package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eventhub/internal/server/http/dto"
	"github.com/polkiloo/eventhub/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}

func internalError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Error("request failed",
		slog.String("path", c.FullPath()),
		slog.String("request_id", c.GetString(middleware.RequestIDContextKey)),
		slog.String("error", err.Error()),
	)
	abortError(c, http.StatusInternalServerError, "Internal server error")
}

func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
