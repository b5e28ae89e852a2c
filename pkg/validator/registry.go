package validator

import (
	"log/slog"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/registry"
)

// Func validates value found under key. Failures are reported as
// Validation errors keyed by key.
type Func func(key string, value any) error

// Registry holds named validators referenced from schema files.
type Registry struct {
	logger *slog.Logger
	funcs  *registry.Store[Func]
}

// NewRegistry creates an empty validator registry.
// A nil logger disables logging.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = logger.NewNope()
	}
	return &Registry{
		logger: log.With(slog.String("registry", "validator")),
		funcs:  registry.New[Func](),
	}
}

// Register adds fn under name, overwriting any previous registration.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return apperr.AppPlugin("name", "validator name is required parameter")
	}
	if fn == nil {
		return apperr.AppPlugin(name, "validator func is required parameter")
	}

	if r.funcs.Put(name, fn) {
		r.logger.Warn("overwriting the existing validator function", slog.String("validator", name))
	} else {
		r.logger.Info("registering validator", slog.String("validator", name))
	}
	return nil
}

// RegisterBuiltins registers every builtin validator.
func (r *Registry) RegisterBuiltins() error {
	for _, b := range Builtins() {
		if err := r.Register(b.Name, b.Func); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	return r.funcs.Get(name)
}

// Names returns validator names in registration order.
func (r *Registry) Names() []string {
	return r.funcs.Keys()
}

// Run applies the named validator to value.
// An unknown validator name is a Schema error.
func (r *Registry) Run(name, key string, value any) error {
	fn, ok := r.funcs.Get(name)
	if !ok {
		return apperr.Schema(key, "Validator not found: "+name)
	}
	return fn(key, value)
}
