package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/config"
)

// Module exposes payment provider adapters to fx graph.
var Module = fx.Provide(newVerifier, newGateway)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.StripeWebhookSecret)
}

func newGateway(p clientParams) Gateway {
	return NewClient(p.Config.StripeSecretKey, p.Config.ServerURL, p.Logger)
}
