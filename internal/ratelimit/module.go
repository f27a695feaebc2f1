package ratelimit

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/config"
)

// Module provides the public API rate limiter.
var Module = fx.Options(
	fx.Provide(newLimiter),
	fx.Invoke(registerLifecycle),
)

type limiterParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newLimiter(p limiterParams) (*Limiter, error) {
	return New(p.Config.RateLimit, p.Config.RedisAddr, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, l *Limiter) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return l.Close()
		},
	})
}
