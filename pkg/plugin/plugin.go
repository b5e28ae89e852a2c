package plugin

import (
	"fmt"
	"log/slog"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/route"
	"github.com/emapp/emapp/pkg/schema"
	"github.com/emapp/emapp/pkg/utility"
	"github.com/emapp/emapp/pkg/validator"
)

// Core contributes schemas, API actions, validators and utilities.
type Core interface {
	AppSchema(schemas *schema.Registry) error
	AppAPIActions(actions *action.Registry) error
	AppValidators(validators *validator.Registry) error
	AppUtilities(utilities *utility.Registry) error

	// RegisterCoreInterface runs after the four hooks above for any
	// extension-specific registration.
	RegisterCoreInterface(r *Registries) error
}

// Routes contributes redirects and routes.
type Routes interface {
	AppRedirects(redirects *route.Redirects) error
	AppRoute(routes *route.Routes) error

	// RegisterRouteInterface runs after redirects and routes.
	RegisterRouteInterface(r *Registries) error
}

// Templates is reserved for template registration. It is detected but
// never invoked.
type Templates interface {
	RegisterTemplateInterface(r *Registries) error
}

// Base implements every hook as a no-op. Extensions embed it and
// override the hooks they need.
type Base struct{}

func (Base) AppSchema(*schema.Registry) error            { return nil }
func (Base) AppAPIActions(*action.Registry) error        { return nil }
func (Base) AppValidators(*validator.Registry) error     { return nil }
func (Base) AppUtilities(*utility.Registry) error        { return nil }
func (Base) RegisterCoreInterface(*Registries) error     { return nil }
func (Base) AppRedirects(*route.Redirects) error         { return nil }
func (Base) AppRoute(*route.Routes) error                { return nil }
func (Base) RegisterRouteInterface(*Registries) error    { return nil }
func (Base) RegisterTemplateInterface(*Registries) error { return nil }

var (
	_ Core      = Base{}
	_ Routes    = Base{}
	_ Templates = Base{}
)

// RunCoreSequence calls the core hooks of ext in their fixed order:
// schema, API actions, validators, utilities, then RegisterCoreInterface.
// The first error aborts the sequence.
func RunCoreSequence(name string, ext Core, r *Registries) error {
	log := r.logger().With(slog.String("extension", name))
	log.Info("registering core interface")

	steps := []step{
		{name: "schema", run: func() error { return ext.AppSchema(r.Schemas) }},
		{name: "api_actions", run: func() error { return ext.AppAPIActions(r.Actions) }},
		{name: "validators", run: func() error { return ext.AppValidators(r.Validators) }},
		{name: "utilities", run: func() error { return ext.AppUtilities(r.Utilities) }},
		{name: "custom", run: func() error { return ext.RegisterCoreInterface(r) }},
	}
	return runSteps(log, name, steps)
}

// RunRouteSequence calls the route hooks of ext in their fixed order:
// redirects, routes, then RegisterRouteInterface.
func RunRouteSequence(name string, ext Routes, r *Registries) error {
	log := r.logger().With(slog.String("extension", name))
	log.Info("registering route interface")

	steps := []step{
		{name: "redirects", run: func() error { return ext.AppRedirects(r.Redirects) }},
		{name: "routes", run: func() error { return ext.AppRoute(r.Routes) }},
		{name: "custom", run: func() error { return ext.RegisterRouteInterface(r) }},
	}
	return runSteps(log, name, steps)
}

type step struct {
	run  func() error
	name string
}

func runSteps(log *slog.Logger, ext string, steps []step) error {
	for _, s := range steps {
		log.Debug("running registration step", slog.String("step", s.name))
		if err := s.run(); err != nil {
			return fmt.Errorf("extension %s: %s: %w", ext, s.name, err)
		}
	}
	return nil
}
