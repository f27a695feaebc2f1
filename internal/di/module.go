package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/adapter/identity"
	"github.com/polkiloo/eventhub/internal/adapter/payment"
	"github.com/polkiloo/eventhub/internal/app"
	"github.com/polkiloo/eventhub/internal/config"
	"github.com/polkiloo/eventhub/internal/logger"
	"github.com/polkiloo/eventhub/internal/metrics"
	"github.com/polkiloo/eventhub/internal/pkg/auth"
	"github.com/polkiloo/eventhub/internal/ratelimit"
	"github.com/polkiloo/eventhub/internal/server/http/router"
	"github.com/polkiloo/eventhub/internal/storage/postgres"
	"github.com/polkiloo/eventhub/internal/usecase"
)

// Module assembles the full application graph. Extra options are appended last
// so tests can replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		identity.Module,
		ratelimit.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
