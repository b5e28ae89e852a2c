package utility

import (
	"log/slog"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/registry"
)

// Func is a registered utility function.
type Func func(args ...any) (any, error)

// Registry holds utility functions shared between extensions.
type Registry struct {
	logger *slog.Logger
	funcs  *registry.Store[Func]
}

// NewRegistry creates an empty utility registry.
// A nil logger disables logging.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = logger.NewNope()
	}
	return &Registry{
		logger: log.With(slog.String("registry", "utility")),
		funcs:  registry.New[Func](),
	}
}

// Register adds fn under name, overwriting any previous registration.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return apperr.AppPlugin("name", "utility name is required parameter")
	}
	if fn == nil {
		return apperr.AppPlugin(name, "utility func is required parameter")
	}

	if r.funcs.Put(name, fn) {
		r.logger.Warn("overwriting the existing utility function", slog.String("utility", name))
	} else {
		r.logger.Info("registering utility", slog.String("utility", name))
	}
	return nil
}

// Lookup returns the utility registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	return r.funcs.Get(name)
}

// Names returns utility names in registration order.
func (r *Registry) Names() []string {
	return r.funcs.Keys()
}

// Call invokes the utility registered under name.
func (r *Registry) Call(name string, args ...any) (any, error) {
	fn, ok := r.funcs.Get(name)
	if !ok {
		return nil, apperr.NotFound("utility", "Utility not found: "+name)
	}
	return fn(args...)
}

// String invokes the utility registered under name and formats a string result.
// Non-string results produce an Unexpected error.
func (r *Registry) String(name string, args ...any) (string, error) {
	v, err := r.Call(name, args...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", apperr.Unexpected("utility", "Utility "+name+" did not return a string")
	}
	return s, nil
}
