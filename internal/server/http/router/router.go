package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/metrics"
	"github.com/polkiloo/eventhub/internal/ratelimit"
	"github.com/polkiloo/eventhub/internal/server/http/handlers"
	"github.com/polkiloo/eventhub/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade  handlers.EventhubFacade
	Logger  *slog.Logger
	Limiter *ratelimit.Limiter `optional:"true"`
	Metrics *metrics.Recorder  `optional:"true"`
}

// Setup configures gin router with handlers and middleware.
// Webhooks bypass rate limiting, auth and request decompression.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))

	if p.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))
	}

	webhookHandler := handlers.NewWebhookHandler(p.Facade, p.Logger)
	checkoutHandler := handlers.NewCheckoutHandler(p.Facade, p.Logger)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.Logger)
	eventHandler := handlers.NewEventHandler(p.Facade, p.Logger)
	userHandler := handlers.NewUserHandler(p.Facade, p.Logger)
	healthHandler := handlers.NewHealthHandler(p.Facade, p.Logger)

	webhooks := engine.Group("/api/webhook")
	webhooks.POST("/stripe", webhookHandler.Stripe)
	if p.Facade.IdentityWebhookEnabled() {
		webhooks.POST("/clerk", webhookHandler.Clerk)
	}

	api := engine.Group("/api")
	if p.Limiter != nil {
		api.Use(middleware.RateLimit(p.Limiter.Limiter, p.Logger))
	}
	api.Use(middleware.DecompressRequest(handlers.MaxWebhookBytes))
	api.Use(gzip.Gzip(gzip.DefaultCompression))

	api.GET("/health", healthHandler.Check)
	api.GET("/events/:id", eventHandler.Get)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(p.Facade))
	authed.POST("/checkout", checkoutHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.POST("/events", eventHandler.Create)
	authed.GET("/events/:id/orders", orderHandler.Registrants)
	authed.GET("/users/me", userHandler.Me)
	authed.PUT("/users/me/profile", userHandler.CompleteProfile)

	return engine
}
