package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/adapter/identity"
	"github.com/polkiloo/eventhub/internal/adapter/payment"
	"github.com/polkiloo/eventhub/internal/config"
	"github.com/polkiloo/eventhub/internal/domain/repository"
	"github.com/polkiloo/eventhub/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newMetadataEnricher,
	NewReconcileUseCase,
	newWebhookUseCase,
	newCheckoutUseCase,
	NewOrderQueryUseCase,
	NewEventUseCase,
	newUserUseCase,
)

func newMetadataEnricher(dir identity.Directory, logger *slog.Logger, rec *metrics.Recorder) Enricher {
	return NewMetadataEnricher(dir, logger, rec)
}

func newCheckoutUseCase(events repository.EventRepository, orders repository.OrderRepository, gateway payment.Gateway) *CheckoutUseCase {
	return NewCheckoutUseCase(events, orders, gateway)
}

func newUserUseCase(users repository.UserRepository, dir identity.Directory, cfg *config.Config, logger *slog.Logger) *UserUseCase {
	return NewUserUseCase(users, dir, cfg.OrderOnUserDelete, logger)
}

type webhookParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	Payments   *payment.Verifier
	Identities *identity.WebhookVerifier `optional:"true"`
	Reconciler *ReconcileUseCase
	Users      *UserUseCase
}

func newWebhookUseCase(p webhookParams) *WebhookUseCase {
	deps := WebhookDeps{
		Payments:   p.Payments,
		Reconciler: p.Reconciler,
		Users:      p.Users,
		Timeout:    p.Config.WebhookTimeout,
		Logger:     p.Logger,
		Metrics:    p.Metrics,
	}
	if p.Identities != nil {
		deps.Identities = p.Identities
	}
	return NewWebhookUseCase(deps)
}
