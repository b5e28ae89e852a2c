package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures error forwarding to Sentry.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	// Level is the minimum level written to stdout.
	Level slog.Level
	// MinLevel selects which records reach Sentry as logs; errors always
	// become events.
	MinLevel slog.Level
}

// NewWithSentry creates a logger writing to stdout and, when DSN is set,
// to Sentry. Without a DSN, or if the SDK fails to start, it logs to
// stdout only.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})

	if cfg.DSN == "" {
		return slog.New(NewHandler([]slog.Handler{stdout}, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize sentry", Error(err))
		return slog.New(NewHandler([]slog.Handler{stdout}, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewHandler([]slog.Handler{stdout, sentryHandler}, extractors...))
}
