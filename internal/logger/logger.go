package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/eventhub/internal/config"
)

// New creates a preconfigured slog.Logger honouring the configured level.
func New(cfg *config.Config) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg.LogLevel)
}

// NewWithWriter creates a JSON logger writing to w. Unknown levels fall back to info.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
