package internal

import (
	"context"
	"log/slog"

	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/plugin"
)

// Option configures the application.
type Option func(*App)

// WithLogger sets the application logger. Registries and the bootstrap
// phases log through it. A nil logger is ignored.
//
// Example:
//
//	emapp.New(
//	    emapp.WithLogger(logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())),
//	)
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSettings appends settings sources. They are applied after the
// compiled-in defaults, in the order given.
//
// Example:
//
//	emapp.WithSettings(
//	    config.YAMLFile("emapp.yaml", true),
//	    config.DotEnv(".env"),
//	    config.Environ(config.EnvPrefix),
//	)
func WithSettings(sources ...config.Source) Option {
	return func(a *App) {
		a.sources = append(a.sources, sources...)
	}
}

// WithExtensions adds extension entry points to the catalog. Only the
// entries named in the installed apps are registered.
func WithExtensions(entries ...plugin.EntryPoint) Option {
	return func(a *App) {
		for _, ep := range entries {
			a.catalog.Add(ep)
		}
	}
}

// WithInstalledApps selects the extensions to register, overriding the
// INSTALLED_APPS setting.
func WithInstalledApps(names ...string) Option {
	return func(a *App) {
		a.installed = append([]string{}, names...)
	}
}

// WithAnonymousAPI lets unauthenticated requests reach API actions.
// Actions still run their own authorization checks.
func WithAnonymousAPI() Option {
	return func(a *App) {
		a.anonymousAPI = true
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
//
// Example:
//
//	emapp.WithErrorHandler(func(c emapp.Context, err error) error {
//	    status, body := emapp.ErrorResponse(err)
//	    return c.JSON(status, body)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler. It runs after the
// re_path redirects had a chance to match.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithShutdownHook registers a cleanup function that runs after the HTTP
// server stops, such as closing a Redis client.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(a *App) {
		if fn != nil {
			a.shutdownHooks = append(a.shutdownHooks, fn)
		}
	}
}
