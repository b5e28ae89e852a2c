package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger that discards everything. Registries and
// extensions fall back to it when no logger is supplied.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewWriter returns a text logger writing to w at debug level.
// Tests use it to assert on log output.
func NewWriter(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
