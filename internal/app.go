package internal

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/plugin"
)

// App is a bootstrapped EMApp instance: registries populated by the
// installed extensions and a router serving their routes.
// App is immutable after creation.
type App struct {
	router          chi.Router
	registries      *plugin.Registries
	catalog         *plugin.Catalog
	errorHandler    ErrorHandler
	notFoundHandler HandlerFunc
	healthConfig    *healthConfig
	logger          *slog.Logger
	loaded          []string
	installed       []string
	sources         []config.Source
	middlewares     []Middleware
	shutdownHooks   []func(context.Context) error
	anonymousAPI    bool
}

// New creates an application: settings are collected, the bootstrap
// phases run, and the registered routes are mounted.
//
// Example:
//
//	app, err := emapp.New(
//	    emapp.WithSettings(config.YAMLFile("emapp.yaml", true)),
//	    emapp.WithExtensions(core.EntryPoint(), hrmgmt.EntryPoint()),
//	    emapp.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	)
func New(opts ...Option) (*App, error) {
	a := &App{
		router:  chi.NewRouter(),
		logger:  logger.NewNope(),
		catalog: plugin.NewCatalog(),
		sources: []config.Source{config.Values(config.Defaults())},
	}
	for _, opt := range opts {
		opt(a)
	}

	settings, err := config.Collect(a.sources...)
	if err != nil {
		return nil, err
	}

	a.registries = plugin.NewRegistries(config.New(), a.logger)
	a.registries.API = a.wrapHandler(NewDispatcher(a.registries.Actions, a.anonymousAPI).Handle)

	boot := NewBootstrap(a.registries, a.catalog, a.installed)
	if err := boot.Setup(settings); err != nil {
		return nil, err
	}
	a.loaded = boot.Loaded()

	a.setupRoutes()
	return a, nil
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Registries returns the populated registries.
func (a *App) Registries() *plugin.Registries {
	return a.registries
}

// Config returns the settings registry.
func (a *App) Config() *config.Registry {
	return a.registries.Config
}

// Extensions returns the names of the registered extensions in order.
func (a *App) Extensions() []string {
	return append([]string(nil), a.loaded...)
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// setupRoutes mounts middleware, health probes, redirects and routes.
// Route redirects are mounted after routes so a redirect wins over a
// route with the same pattern.
func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	a.mountHealth(a.router)

	a.registries.Routes.Mount(a.router)
	a.registries.Redirects.Mount(a.router)

	var notFound http.Handler = a.wrapHandler(defaultNotFound)
	if a.notFoundHandler != nil {
		notFound = a.wrapHandler(a.notFoundHandler)
	}
	a.router.NotFound(a.registries.Redirects.Fallback(notFound).ServeHTTP)
	a.router.MethodNotAllowed(a.wrapHandler(defaultMethodNotAllowed))
}

func defaultNotFound(Context) error {
	return NewHTTPError(http.StatusNotFound, "Page not found")
}

func defaultMethodNotAllowed(Context) error {
	return NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
}
