package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/polkiloo/eventhub/internal/config"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New(&config.Config{})
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}

	if _, ok := l.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", l.Handler())
	}
}

func TestNewWithWriterHonoursLevel(t *testing.T) {
	cases := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"WARN", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l := NewWithWriter(&bytes.Buffer{}, tc.level)
			if !l.Enabled(context.Background(), tc.enabled) {
				t.Errorf("expected %v to be enabled", tc.enabled)
			}
			if l.Enabled(context.Background(), tc.muted) {
				t.Errorf("expected %v to be muted", tc.muted)
			}
		})
	}

	var buf bytes.Buffer
	NewWithWriter(&buf, "info").Info("hello", slog.String("k", "v"))
	if !bytes.Contains(buf.Bytes(), []byte(`"k":"v"`)) {
		t.Fatalf("expected JSON attribute in output, got %s", buf.String())
	}
}
