// Package core is the base extension every EMApp installation loads.
//
// It registers the builtin validators, the shared utilities used by other
// extensions, a ping action, the generic API route and the landing page
// redirect.
package core

import (
	"net/http"
	"strings"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/plugin"
	"github.com/emapp/emapp/pkg/route"
	"github.com/emapp/emapp/pkg/utility"
	"github.com/emapp/emapp/pkg/validator"
)

// Name is the installed-app label of the core extension.
const Name = "core"

// APIRouteKey is the url key of the generic API route. Registering the
// same key from another extension replaces the dispatcher.
const APIRouteKey = "app_api"

// Extension registers the core components.
type Extension struct {
	plugin.Base
	cfg *config.Registry
	api http.Handler
}

// New creates the core extension reading settings from cfg and mounting
// api as the generic API dispatcher.
func New(cfg *config.Registry, api http.Handler) *Extension {
	if cfg == nil {
		cfg = config.New()
	}
	return &Extension{cfg: cfg, api: api}
}

// EntryPoint returns the discoverable entry point of the core extension.
func EntryPoint() plugin.EntryPoint {
	return plugin.EntryPoint{
		Name: Name,
		Load: func(r *plugin.Registries) (any, error) {
			return New(r.Config, r.API), nil
		},
	}
}

// AppAPIActions registers the ping action.
func (e *Extension) AppAPIActions(r *action.Registry) error {
	return r.Register("ping", e.ping, string(action.MethodGet))
}

func (e *Extension) ping(*action.Context, map[string]any) (any, error) {
	return map[string]any{
		"message":     "pong",
		"application": e.cfg.String(config.ApplicationShortTitle, defaultShortTitle),
		"environment": e.cfg.String(config.Environment, ""),
	}, nil
}

// AppValidators registers the builtin validators.
func (e *Extension) AppValidators(r *validator.Registry) error {
	return r.RegisterBuiltins()
}

// AppUtilities registers the shared utilities.
func (e *Extension) AppUtilities(r *utility.Registry) error {
	for _, u := range e.utilities() {
		if err := r.Register(u.name, u.fn); err != nil {
			return err
		}
	}
	return nil
}

// AppRedirects sends the landing page to the profile page.
func (e *Extension) AppRedirects(r *route.Redirects) error {
	return r.Register("/", "/profile/", string(route.Path))
}

// AppRoute mounts the API dispatcher under APPLICATION_API_ENDPOINT.
func (e *Extension) AppRoute(r *route.Routes) error {
	if e.api == nil {
		return apperr.AppPlugin(APIRouteKey, "API dispatcher is not available")
	}
	endpoint := strings.TrimSuffix(e.cfg.String(config.ApplicationAPIEndpoint, "/api/v1/"), "/")
	return r.Register(APIRouteKey, route.Route{
		Pattern: endpoint + "/{action_name}",
		Handler: e.api,
		Name:    APIRouteKey,
	})
}
