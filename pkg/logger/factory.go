package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON logger writing to stdout at the given level.
func New(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(NewHandler([]slog.Handler{h}, extractors...))
}

// ParseLevel maps a LOG_LEVEL setting to a slog level.
// Unknown values select info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Error returns the error attribute used across the application.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Component tags records emitted by a named part of the application,
// e.g. a registry or an extension.
func Component(log *slog.Logger, kind, name string) *slog.Logger {
	if log == nil {
		log = NewNope()
	}
	return log.With(slog.String(kind, name))
}
