package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/logger"
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type runConfig struct {
	parent          context.Context
	logger          *slog.Logger
	hooks           []func(context.Context) error
	shutdownTimeout time.Duration
}

// Logger replaces the application logger for the server lifecycle.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds the graceful shutdown, shared by in-flight
// requests and shutdown hooks. Overrides the SHUTDOWN_TIMEOUT setting.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook appends a cleanup function run after the application's own
// hooks.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
	}
}

// WithContext sets the parent context of the server. Its cancellation
// shuts the server down like SIGINT or SIGTERM.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// Run serves the application until SIGINT, SIGTERM or cancellation of the
// WithContext parent, then shuts down gracefully and runs the shutdown
// hooks. An empty addr selects the HTTP_ADDRESS setting.
//
//	err := app.Run("", emapp.ShutdownTimeout(10*time.Second))
func (a *App) Run(addr string, opts ...RunOption) error {
	settings := a.registries.Config
	rc := runConfig{
		parent:          context.Background(),
		logger:          a.logger,
		hooks:           slices.Clone(a.shutdownHooks),
		shutdownTimeout: settings.Duration(config.ShutdownTimeout, 30*time.Second),
	}
	for _, opt := range opts {
		opt(&rc)
	}
	if addr == "" {
		addr = settings.String(config.HTTPAddress, ":8080")
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadTimeout:       settings.Duration(config.HTTPReadTimeout, 15*time.Second),
		WriteTimeout:      settings.Duration(config.HTTPWriteTimeout, 30*time.Second),
		IdleTimeout:       settings.Duration(config.HTTPIdleTimeout, 2*time.Minute),
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          slog.NewLogLogger(rc.logger.Handler(), slog.LevelWarn),
	}
	return serve(srv, rc)
}

func serve(srv *http.Server, rc runConfig) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(rc.parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := make(chan error, 1)
	go func() {
		rc.logger.Info("listening", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	rc.logger.Info("shutting down", slog.Duration("timeout", rc.shutdownTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), rc.shutdownTimeout)
	defer cancel()

	errs := []error{srv.Shutdown(ctx)}
	for _, hook := range rc.hooks {
		if err := hook(ctx); err != nil {
			rc.logger.Error("shutdown hook failed", logger.Error(err))
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	rc.logger.Info("stopped")
	return nil
}
