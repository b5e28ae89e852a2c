package route

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/registry"
)

// methods are the HTTP methods chi can route.
var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// Route is a single dispatch table entry.
type Route struct {
	Handler http.Handler

	// Method restricts the route to one HTTP method; empty matches all.
	// Methods chi cannot route are rejected at registration.
	Method string

	// Pattern is a chi route pattern such as /profile/{id}.
	Pattern string

	// Name is an optional friendly name used for reverse lookups.
	Name string
}

// Routes collects routes keyed by url key. Registering an existing key
// replaces the route, so an extension can override another extension's
// page by reusing its key.
type Routes struct {
	logger *slog.Logger
	routes *registry.Store[Route]
}

// NewRoutes creates an empty route registry.
// A nil logger disables logging.
func NewRoutes(log *slog.Logger) *Routes {
	if log == nil {
		log = logger.NewNope()
	}
	return &Routes{
		logger: log.With(slog.String("registry", "route")),
		routes: registry.New[Route](),
	}
}

// Register stores rt under urlKey.
func (r *Routes) Register(urlKey string, rt Route) error {
	if urlKey == "" {
		return apperr.AppPlugin("url_key", "No url_key is given in app routes")
	}
	if rt.Pattern == "" || rt.Handler == nil {
		return apperr.AppPlugin(urlKey, "route requires a pattern and a handler")
	}
	rt.Pattern = normalizePath(rt.Pattern)
	rt.Method = strings.ToUpper(rt.Method)
	if rt.Method != "" && !slices.Contains(methods, rt.Method) {
		return apperr.AppPlugin(urlKey, "unsupported http method "+rt.Method)
	}

	if r.routes.Put(urlKey, rt) {
		r.logger.Warn("overwriting the existing url route", slog.String("url_key", urlKey), slog.String("pattern", rt.Pattern))
	} else {
		r.logger.Info("adding route", slog.String("url_key", urlKey), slog.String("pattern", rt.Pattern))
	}
	return nil
}

// Lookup returns the route stored under urlKey.
func (r *Routes) Lookup(urlKey string) (Route, bool) {
	return r.routes.Get(urlKey)
}

// Keys returns url keys in first-registration order.
func (r *Routes) Keys() []string {
	return r.routes.Keys()
}

// Routes returns the effective dispatch table, one entry per url key.
func (r *Routes) Routes() []Route {
	return r.routes.Values()
}

// URL returns the pattern of the route with the given name, or url key.
func (r *Routes) URL(name string) (string, bool) {
	var pattern string
	r.routes.Each(func(key string, rt Route) bool {
		if rt.Name == name || key == name {
			pattern = rt.Pattern
			return false
		}
		return true
	})
	return pattern, pattern != ""
}

// Mount adds every route to router in table order.
func (r *Routes) Mount(router chi.Router) {
	r.routes.Each(func(key string, rt Route) bool {
		if rt.Method == "" {
			router.Handle(rt.Pattern, rt.Handler)
		} else {
			router.Method(rt.Method, rt.Pattern, rt.Handler)
		}
		r.logger.Debug("route mounted", slog.String("url_key", key), slog.String("pattern", rt.Pattern))
		return true
	})
}

func normalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
