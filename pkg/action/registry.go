package action

import (
	"context"
	"log/slog"
	"strings"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/registry"
)

// Func is a registered API action.
// The result is returned verbatim to the caller for wrapping.
type Func func(c *Context, data map[string]any) (any, error)

// Method classifies an action by HTTP-like verb.
type Method string

const (
	MethodGet    Method = "get"
	MethodPost   Method = "post"
	MethodPut    Method = "put"
	MethodDelete Method = "delete"
)

// Methods lists every supported method.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseMethod parses a case-insensitive method name.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, true
	}
	return "", false
}

// Registry holds API actions in four per-method sub-registries.
type Registry struct {
	logger  *slog.Logger
	actions map[Method]*registry.Store[Func]
}

// NewRegistry creates an empty action registry.
// A nil logger disables logging.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = logger.NewNope()
	}
	r := &Registry{
		logger:  log.With(slog.String("registry", "api")),
		actions: make(map[Method]*registry.Store[Func], len(Methods)),
	}
	for _, m := range Methods {
		r.actions[m] = registry.New[Func]()
	}
	return r
}

// Register adds fn under name for method. The method is validated first.
// Registering an existing name overwrites it and logs a warning.
func (r *Registry) Register(name string, fn Func, method string) error {
	m, ok := ParseMethod(method)
	if !ok {
		return errMethodNotAllowed()
	}
	if name == "" {
		return apperr.AppPlugin("action_name", "api action name is required parameter")
	}
	if fn == nil {
		return apperr.AppPlugin("action_func", "api action_func is required parameter")
	}

	if r.actions[m].Put(name, fn) {
		r.logger.Warn("overwriting the existing api action",
			slog.String("action", name), slog.String("method", string(m)))
	} else {
		r.logger.Info("registering api action",
			slog.String("action", name), slog.String("method", string(m)))
	}
	return nil
}

// Lookup returns the action registered under name for method.
func (r *Registry) Lookup(method, name string) (Func, bool) {
	m, ok := ParseMethod(method)
	if !ok {
		return nil, false
	}
	return r.actions[m].Get(name)
}

// Names returns the action names registered for method in registration order.
func (r *Registry) Names(method string) []string {
	m, ok := ParseMethod(method)
	if !ok {
		return nil
	}
	return r.actions[m].Keys()
}

// Run invokes the action registered under name for method.
func (r *Registry) Run(method, name string, c *Context, data map[string]any) (any, error) {
	m, ok := ParseMethod(method)
	if !ok {
		return nil, errMethodNotAllowed()
	}
	fn, ok := r.actions[m].Get(name)
	if !ok {
		return nil, apperr.NotFound("action", "API action not found")
	}
	if c == nil {
		c = NewContext(context.Background(), name)
	}
	if data == nil {
		data = map[string]any{}
	}

	r.logger.InfoContext(c, "executing api action",
		slog.String("action", name), slog.String("method", string(m)))
	return fn(c, data)
}

// Get runs a GET action.
func (r *Registry) Get(name string, c *Context, data map[string]any) (any, error) {
	return r.Run(string(MethodGet), name, c, data)
}

// Post runs a POST action.
func (r *Registry) Post(name string, c *Context, data map[string]any) (any, error) {
	return r.Run(string(MethodPost), name, c, data)
}

// Put runs a PUT action.
func (r *Registry) Put(name string, c *Context, data map[string]any) (any, error) {
	return r.Run(string(MethodPut), name, c, data)
}

// Delete runs a DELETE action.
func (r *Registry) Delete(name string, c *Context, data map[string]any) (any, error) {
	return r.Run(string(MethodDelete), name, c, data)
}

func errMethodNotAllowed() error {
	return apperr.MethodNotAllowed("method", "Only get, post, put, delete methods are allowed")
}
