package internal

import (
	"context"
	"errors"
	"maps"

	"github.com/go-chi/chi/v5"

	"github.com/emapp/emapp/pkg/health"
)

// ExtensionsCheck names the built-in readiness check that fails while no
// extension is loaded.
const ExtensionsCheck = "extensions"

var errNoExtensions = errors.New("no extensions loaded")

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// HealthOption configures the probe endpoints.
type HealthOption func(*healthConfig)

// WithHealthChecks mounts the liveness and readiness probes, by default at
// /health/live and /health/ready. Readiness always includes the
// extensions check.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  "/health/live",
			readinessPath: "/health/ready",
			checks:        health.Checks{},
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLivenessPath moves the liveness probe.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath moves the readiness probe.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check. Empty names and nil
// functions are ignored.
//
//	emapp.WithHealthChecks(
//	    emapp.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name != "" && fn != nil {
			c.checks[name] = fn
		}
	}
}

// mountHealth registers the probes on r when health checks are enabled.
func (a *App) mountHealth(r chi.Router) {
	if a.healthConfig == nil {
		return
	}
	loaded := len(a.loaded)
	checks := maps.Clone(a.healthConfig.checks)
	checks[ExtensionsCheck] = func(context.Context) error {
		if loaded == 0 {
			return errNoExtensions
		}
		return nil
	}
	r.Get(a.healthConfig.livenessPath, health.LivenessHandler())
	r.Get(a.healthConfig.readinessPath, health.ReadinessHandler(checks, health.WithLogger(a.logger)))
}
