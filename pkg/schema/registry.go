package schema

import (
	"log/slog"

	"github.com/xeipuuv/gojsonschema"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/registry"
	"github.com/emapp/emapp/pkg/validator"
)

type entry struct {
	doc      map[string]any
	compiled *gojsonschema.Schema
}

// Registry stores schema documents by name and validates data against them.
// Custom validators referenced by schemas are resolved through the
// validator registry at validation time, so a validator registered by a
// later extension applies to schemas registered by earlier ones.
type Registry struct {
	logger     *slog.Logger
	validators *validator.Registry
	schemas    *registry.Store[entry]
}

// NewRegistry creates an empty schema registry backed by validators.
// A nil logger disables logging.
func NewRegistry(validators *validator.Registry, log *slog.Logger) *Registry {
	if log == nil {
		log = logger.NewNope()
	}
	if validators == nil {
		validators = validator.NewRegistry(log)
	}
	return &Registry{
		logger:     log.With(slog.String("registry", "schema")),
		validators: validators,
		schemas:    registry.New[entry](),
	}
}

// Validators returns the validator registry used for custom validation.
func (r *Registry) Validators() *validator.Registry {
	return r.validators
}

// store compiles doc and stores it under name. Empty documents are ignored.
func (r *Registry) store(name string, doc map[string]any) error {
	if len(doc) == 0 {
		r.logger.Warn("empty schema document, skipping", slog.String("schema", name))
		return nil
	}
	if _, ok := doc["properties"].(map[string]any); !ok {
		return apperr.AppPlugin("schema", "Schema "+name+" must define a properties object")
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return apperr.Wrap(apperr.KindAppPlugin, err, map[string]any{
			"schema": "Schema " + name + " is not a valid JSON schema: " + err.Error(),
		})
	}

	if r.schemas.Put(name, entry{doc: doc, compiled: compiled}) {
		r.logger.Warn("overwriting the existing schema", slog.String("schema", name))
	} else {
		r.logger.Info("registering schema", slog.String("schema", name))
	}
	return nil
}

// Get returns a deep copy of the schema registered under name.
func (r *Registry) Get(name string) (*Definition, error) {
	e, ok := r.schemas.Get(name)
	if !ok {
		return nil, apperr.NotFound("schema", "Schema not found: "+name)
	}
	doc, _ := deepCopy(e.doc).(map[string]any)
	return newDefinition(name, doc), nil
}

// Has reports whether a schema is registered under name.
func (r *Registry) Has(name string) bool {
	return r.schemas.Has(name)
}

// Names returns schema names in registration order.
func (r *Registry) Names() []string {
	return r.schemas.Keys()
}
