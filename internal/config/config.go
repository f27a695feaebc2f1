package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/eventhub/internal/domain/model"
)

// Args are the command line arguments left after the subcommand name.
type Args []string

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	ServerURL           string
	StripeSecretKey     string
	StripeWebhookSecret string
	ClerkSecretKey      string
	ClerkWebhookSecret  string
	JWTSecret           string
	WebhookTimeout      time.Duration
	ShutdownTimeout     time.Duration
	SweepInterval       time.Duration
	SweepLookback       time.Duration
	WorkerPoolSize      int
	OrderOnUserDelete   model.OrderDeletePolicy
	RateLimit           string
	RedisAddr           string
	LogLevel            string
	AutoMigrate         bool
}

const (
	defaultRunAddress      = ":8080"
	defaultServerURL       = "http://localhost:8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultWebhookTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultSweepInterval   = 5 * time.Minute
	defaultSweepLookback   = 24 * time.Hour
	defaultWorkerPoolSize  = 4
	defaultRateLimit       = "100-M"
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

// FromArgs parses configuration from the supplied arguments and the process environment.
func FromArgs(args Args) (*Config, error) {
	return load(args, os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		ServerURL:           getString(lookup, "SERVER_URL", defaultServerURL),
		StripeSecretKey:     getString(lookup, "STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getString(lookup, "STRIPE_WEBHOOK_SECRET", ""),
		ClerkSecretKey:      getString(lookup, "CLERK_SECRET_KEY", ""),
		ClerkWebhookSecret:  getString(lookup, "CLERK_WEBHOOK_SECRET", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		WebhookTimeout:      getDuration(lookup, "WEBHOOK_TIMEOUT", defaultWebhookTimeout),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SweepInterval:       getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepLookback:       getDuration(lookup, "SWEEP_LOOKBACK", defaultSweepLookback),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		OrderOnUserDelete:   model.OrderDeletePolicy(getString(lookup, "ORDER_ON_USER_DELETE", string(model.OrderDeletePolicyUnlink))),
		RateLimit:           getString(lookup, "RATE_LIMIT", defaultRateLimit),
		RedisAddr:           getString(lookup, "REDIS_ADDR", ""),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
		AutoMigrate:         getBool(lookup, "AUTO_MIGRATE", true),
	}

	fs := flag.NewFlagSet("eventhub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		webhookTimeoutStr  = cfg.WebhookTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		sweepLookbackStr   = cfg.SweepLookback.String()
		deletePolicyStr    = string(cfg.OrderOnUserDelete)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.ServerURL, "server-url", cfg.ServerURL, "Public base URL used for checkout redirects")
	fs.StringVar(&cfg.StripeSecretKey, "stripe-key", cfg.StripeSecretKey, "Stripe API secret key")
	fs.StringVar(&cfg.StripeWebhookSecret, "stripe-webhook-secret", cfg.StripeWebhookSecret, "Stripe webhook signing secret")
	fs.StringVar(&cfg.ClerkSecretKey, "clerk-key", cfg.ClerkSecretKey, "Clerk backend API key")
	fs.StringVar(&cfg.ClerkWebhookSecret, "clerk-webhook-secret", cfg.ClerkWebhookSecret, "Clerk webhook signing secret")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for verifying auth tokens")
	fs.StringVar(&webhookTimeoutStr, "webhook-timeout", webhookTimeoutStr, "Processing budget per webhook delivery")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between checkout session sweeps")
	fs.StringVar(&sweepLookbackStr, "sweep-lookback", sweepLookbackStr, "Age of the oldest checkout session a sweep reads")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&deletePolicyStr, "order-on-user-delete", deletePolicyStr, "Order policy on user deletion: unlink or delete")
	fs.StringVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Public API rate, e.g. 100-M")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for the shared rate limit store")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.AutoMigrate, "auto-migrate", cfg.AutoMigrate, "Apply migrations when the database is first opened")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.WebhookTimeout, err = time.ParseDuration(webhookTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid webhook timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.SweepLookback, err = time.ParseDuration(sweepLookbackStr); err != nil {
		return nil, fmt.Errorf("invalid sweep lookback: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	switch policy := model.OrderDeletePolicy(strings.ToLower(deletePolicyStr)); policy {
	case model.OrderDeletePolicyUnlink, model.OrderDeletePolicyDelete:
		cfg.OrderOnUserDelete = policy
	default:
		return nil, fmt.Errorf("invalid order delete policy %q", deletePolicyStr)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = defaultWebhookTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepLookback <= 0 {
		cfg.SweepLookback = defaultSweepLookback
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
