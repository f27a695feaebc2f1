package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/adapter/payment"
	"github.com/polkiloo/eventhub/internal/config"
	"github.com/polkiloo/eventhub/internal/metrics"
	"github.com/polkiloo/eventhub/internal/pkg/auth"
	"github.com/polkiloo/eventhub/internal/server/http/handlers"
	"github.com/polkiloo/eventhub/internal/storage/postgres"
	"github.com/polkiloo/eventhub/internal/usecase"
	"github.com/polkiloo/eventhub/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			newEventhubFacade,
			fx.As(fx.Self()),
			fx.As(new(handlers.EventhubFacade)),
		),
		newHTTPServer,
		newSessionSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Tokens    auth.Strategy
	Webhooks  *usecase.WebhookUseCase
	Reconcile *usecase.ReconcileUseCase
	Checkout  *usecase.CheckoutUseCase
	Orders    *usecase.OrderQueryUseCase
	Events    *usecase.EventUseCase
	Users     *usecase.UserUseCase
	Gateway   payment.Gateway
	Storage   *postgres.Storage
}

func newEventhubFacade(p facadeParams) *EventhubFacade {
	return NewEventhubFacade(FacadeDeps{
		Tokens:    p.Tokens,
		Webhooks:  p.Webhooks,
		Reconcile: p.Reconcile,
		Checkout:  p.Checkout,
		Orders:    p.Orders,
		Events:    p.Events,
		Users:     p.Users,
		Sessions:  p.Gateway,
		Health:    p.Storage,
	})
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: p.Config.WebhookTimeout,
	}
}

type sweeperParams struct {
	fx.In

	Facade  *EventhubFacade
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Recorder `optional:"true"`
}

func newSessionSweeper(p sweeperParams) *worker.SessionSweeper {
	return worker.NewSessionSweeper(
		p.Facade,
		p.Config.SweepInterval,
		p.Config.SweepLookback,
		p.Config.WorkerPoolSize,
		p.Config.WebhookTimeout,
		p.Logger,
		p.Metrics,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.SessionSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting eventhub", slog.String("addr", p.Server.Addr))
			p.Sweeper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("eventhub stopped")
			return nil
		},
	})
}
