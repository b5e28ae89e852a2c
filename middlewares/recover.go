package middlewares

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/getsentry/sentry-go"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/apperr"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// PanicError is a panic recovered while serving a request.
type PanicError struct {
	Value  any
	Method string
	Path   string
	// Stack is nil when stack capture is disabled.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic serving %s %s: %v", e.Method, e.Path, e.Value)
}

// AsPanicError extracts the PanicError from err if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// PanicReporter forwards a recovered panic to an error tracker.
type PanicReporter func(ctx context.Context, pe *PanicError)

// ReportToSentry captures the panic on the current Sentry hub. It is a
// no-op until the Sentry SDK is initialised.
func ReportToSentry(ctx context.Context, pe *PanicError) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.Clone().RecoverWithContext(ctx, pe)
}

type recoverConfig struct {
	report    PanicReporter
	stackSize int
}

// RecoverOption configures the recover middleware.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize sets the maximum captured stack size. Zero
// disables stack capture.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size >= 0 {
			cfg.stackSize = size
		}
	}
}

// WithRecoverReporter replaces ReportToSentry. A nil reporter disables
// reporting.
func WithRecoverReporter(fn PanicReporter) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.report = fn
	}
}

// Recover returns middleware that turns a panic into an
// InternalServerError wrapping a PanicError, so the client receives the
// standard error envelope. The panic is logged and reported.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{
		report:    ReportToSentry,
		stackSize: DefaultStackSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				req := c.Request()
				pe := &PanicError{Value: r, Method: req.Method, Path: req.URL.Path}
				attrs := []slog.Attr{slog.Any("panic", r), slog.String("path", pe.Path)}
				if cfg.stackSize > 0 {
					pe.Stack = make([]byte, cfg.stackSize)
					pe.Stack = pe.Stack[:runtime.Stack(pe.Stack, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.Log(slog.LevelError, "panic recovered", attrs...)
				if cfg.report != nil {
					cfg.report(c.Context(), pe)
				}

				err = apperr.Wrap(apperr.KindInternalServerError, pe, nil)
			}()

			return next(c)
		}
	}
}
