package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/logger"
)

// DefaultRequestIDHeaders are tried in order for an id set by a proxy.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestIDConfig struct {
	generate func() string
	echo     string
	lookup   internal.Lookup
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders replaces the incoming headers searched for an id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.lookup = internal.HeaderLookup(headers...)
	}
}

// WithRequestIDGenerator replaces uuid.NewString as the id source.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// WithRequestIDResponseHeader names the response header echoing the id.
// An empty name disables the echo.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.echo = header
	}
}

// RequestID tags every request with an id, reusing one sent by the client
// and generating a UUID otherwise. API actions see it as
// action.Context.RequestID and RequestIDExtractor adds it to log records.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		generate: uuid.NewString,
		echo:     "X-Request-ID",
		lookup:   internal.HeaderLookup(DefaultRequestIDHeaders...),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id, ok := cfg.lookup.Find(c)
			if !ok {
				id = cfg.generate()
			}
			c.Set(internal.RequestIDKey{}, id)
			if cfg.echo != "" {
				c.SetHeader(cfg.echo, id)
			}
			return next(c)
		}
	}
}

// RequestIDExtractor adds request_id to records logged with a request
// context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id, _ := ctx.Value(internal.RequestIDKey{}).(string)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
