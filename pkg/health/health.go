package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/emapp/emapp/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

var (
	// ErrNilCheck is reported for a check registered without a function.
	ErrNilCheck = errors.New("health: nil check")

	// ErrCheckTimeout replaces the error of a check that ran past the timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)

// CheckFunc reports the readiness of one dependency.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to check functions.
type Checks map[string]CheckFunc

// Response is the probe report.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Healthy reports whether every check passed.
func (r *Response) Healthy() bool {
	return r.Status == StatusHealthy
}

func (r *Response) httpStatus() int {
	if r.Healthy() {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

// Check is the result of a single check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures readiness checks.
type Option func(*config)

// WithTimeout bounds the total time spent running checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes the checks concurrently under one shared timeout.
// A failing check does not cancel the others.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	resp := &Response{Status: StatusHealthy, Checks: make(map[string]Check, len(checks))}
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for name, check := range checks {
		g.Go(func() error {
			err := probe(ctx, check)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				resp.Checks[name] = Check{Status: StatusHealthy}
				return nil
			}
			cfg.logger.WarnContext(ctx, "readiness check failed", slog.String("check", name), logger.Error(err))
			resp.Checks[name] = Check{Status: StatusUnhealthy, Error: err.Error()}
			resp.Status = StatusUnhealthy
			return nil
		})
	}
	_ = g.Wait()
	return resp
}

func probe(ctx context.Context, check CheckFunc) error {
	if check == nil {
		return ErrNilCheck
	}
	err := check(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrCheckTimeout
	}
	return err
}
