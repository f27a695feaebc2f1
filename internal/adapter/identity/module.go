package identity

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eventhub/internal/config"
)

// Module exposes identity provider adapters to fx graph.
var Module = fx.Provide(newDirectory, newWebhookVerifier)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newDirectory(p clientParams) Directory {
	if p.Config.ClerkSecretKey == "" {
		p.Logger.Warn("identity provider key not configured, metadata enrichment disabled")
	}
	return NewClient(p.Config.ClerkSecretKey, p.Logger)
}

// newWebhookVerifier returns nil when no signing secret is configured.
func newWebhookVerifier(cfg *config.Config) (*WebhookVerifier, error) {
	if cfg.ClerkWebhookSecret == "" {
		return nil, nil
	}
	return NewWebhookVerifier(cfg.ClerkWebhookSecret)
}
