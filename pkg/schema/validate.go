package schema

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/xeipuuv/gojsonschema"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/utility"
	"github.com/emapp/emapp/pkg/validator"
)

// Validate checks data against the schema registered under name.
//
// Validation runs in three steps, stopping at the first failure:
//  1. every key of data must be a declared property;
//  2. data must satisfy the JSON-Schema document;
//  3. every declared property runs its validator chain and, when it has
//     options, must hold one of the option values.
//
// It returns true on success; every failure is returned as an error.
func (r *Registry) Validate(name string, data map[string]any) (bool, error) {
	e, ok := r.schemas.Get(name)
	if !ok {
		return false, apperr.NotFound("schema", "Schema not found: "+name)
	}
	if data == nil {
		data = map[string]any{}
	}

	r.logger.Debug("validating data against schema", slog.String("schema", name))
	def := newDefinition(name, e.doc)

	for _, key := range slices.Sorted(maps.Keys(data)) {
		if !def.HasProperty(key) {
			return false, apperr.Validation("parameter", "Not allowed parameter: "+key)
		}
	}

	if err := structural(e.compiled, data); err != nil {
		return false, err
	}

	for _, p := range def.Properties() {
		if err := r.validateProperty(p, data); err != nil {
			return false, err
		}
	}
	return true, nil
}

func structural(compiled *gojsonschema.Schema, data map[string]any) error {
	result, err := compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "InternalServerError"
		}
		return apperr.Wrap(apperr.KindValidation, err, map[string]any{"ValidationError": msg})
	}
	if result.Valid() {
		return nil
	}

	msg := "InternalServerError"
	if errs := result.Errors(); len(errs) > 0 && errs[0].Description() != "" {
		msg = errs[0].Description()
		if f := errs[0].Field(); f != "" && f != "(root)" {
			msg = f + ": " + msg
		}
	}
	return apperr.Validation("ValidationError", msg)
}

func (r *Registry) validateProperty(p Property, data map[string]any) error {
	given := data[p.Name]
	empty := validator.IsEmpty(given)
	names := p.Validators()

	for _, v := range names {
		if v == validator.IgnoreMissing && empty {
			break
		}
		if err := r.validators.Run(v, p.Name, given); err != nil {
			return err
		}
	}

	opts := p.Options()
	if len(opts) == 0 || matchesOption(given, opts) {
		return nil
	}
	if empty && slices.Contains(names, validator.IgnoreMissing) {
		return nil
	}
	return apperr.Validation(p.Name, "Given value does not match the available options")
}

func matchesOption(given any, opts []Option) bool {
	for _, o := range opts {
		if a, ok := number(given); ok {
			if b, ok := number(o.Value); ok && a == b {
				return true
			}
			continue
		}
		if reflect.DeepEqual(given, o.Value) {
			return true
		}
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string, bool:
		return 0, false
	}
	if i, ok := utility.ToInt(v); ok {
		return float64(i), true
	}
	return 0, false
}
