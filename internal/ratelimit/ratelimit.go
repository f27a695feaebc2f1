package ratelimit

import (
	"context"
	"fmt"
	"log/slog"

	rds "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const keyPrefix = "eventhub:limiter"

// Limiter bundles the rate limiter with the client backing its store.
type Limiter struct {
	*limiter.Limiter
	client *rds.Client
}

// New builds limiter for a formatted rate such as "100-M".
// The store is shared through redis when addr is set and in-process otherwise.
func New(rate, addr string, logger *slog.Logger) (*Limiter, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", rate, err)
	}

	if addr == "" {
		logger.Info("rate limiter uses in-memory store", slog.String("rate", rate))
		return &Limiter{Limiter: limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: keyPrefix}), parsed)}, nil
	}

	client := rds.NewClient(&rds.Options{Addr: addr})
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: keyPrefix})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("init redis limiter store: %w", err)
	}
	logger.Info("rate limiter uses redis store", slog.String("rate", rate), slog.String("addr", addr))
	return &Limiter{Limiter: limiter.New(store, parsed), client: client}, nil
}

// Ping checks the shared store when one is configured.
func (l *Limiter) Ping(ctx context.Context) error {
	if l.client == nil {
		return nil
	}
	return l.client.Ping(ctx).Err()
}

// Close releases the redis connection.
func (l *Limiter) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}
