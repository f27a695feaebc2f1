package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// RateLimit throttles requests per client IP.
func RateLimit(l *limiter.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return mgin.NewMiddleware(l,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Error("rate limiter failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}),
	)
}
