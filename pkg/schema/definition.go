package schema

import (
	"maps"
	"slices"
	"strings"

	"github.com/emapp/emapp/pkg/apperr"
)

// Option is one entry of a property's allow-list.
type Option struct {
	Value any    `json:"value"`
	Text  string `json:"text"`
}

// Definition is a private copy of a registered schema document.
// Mutating it never affects the registry.
type Definition struct {
	doc   map[string]any
	props map[string]map[string]any
	name  string
}

func newDefinition(name string, doc map[string]any) *Definition {
	props := map[string]map[string]any{}
	if raw, ok := doc["properties"].(map[string]any); ok {
		for k, v := range raw {
			if p, ok := v.(map[string]any); ok {
				props[k] = p
			} else {
				props[k] = map[string]any{}
			}
		}
	}
	return &Definition{name: name, doc: doc, props: props}
}

// Name returns the registered schema name.
func (d *Definition) Name() string {
	return d.name
}

// Document returns the underlying JSON document.
func (d *Definition) Document() map[string]any {
	return d.doc
}

// PropertyNames returns the declared property names sorted lexicographically.
func (d *Definition) PropertyNames() []string {
	return slices.Sorted(maps.Keys(d.props))
}

// HasProperty reports whether name is a declared property.
func (d *Definition) HasProperty(name string) bool {
	_, ok := d.props[name]
	return ok
}

// Property returns the declared property name.
func (d *Definition) Property(name string) (Property, bool) {
	p, ok := d.props[name]
	if !ok {
		return Property{}, false
	}
	return Property{Name: name, raw: p}, true
}

// Properties returns every property sorted by name.
func (d *Definition) Properties() []Property {
	names := d.PropertyNames()
	out := make([]Property, 0, len(names))
	for _, n := range names {
		out = append(out, Property{Name: n, raw: d.props[n]})
	}
	return out
}

// Visible returns the names of properties whose show list contains role.
func (d *Definition) Visible(role string) []string {
	var out []string
	for _, p := range d.Properties() {
		if p.CanShow(role) {
			out = append(out, p.Name)
		}
	}
	return out
}

// FilterShow returns the entries of data that role may see.
// Keys that are not schema properties are dropped.
func (d *Definition) FilterShow(role string, data map[string]any) map[string]any {
	out := make(map[string]any)
	for _, name := range d.Visible(role) {
		if v, ok := data[name]; ok {
			out[name] = v
		}
	}
	return out
}

// CheckUpdate returns a NotAuthorized error naming the first key of data
// (lexicographically) that role may not update. Keys that are not schema
// properties are ignored.
func (d *Definition) CheckUpdate(role string, data map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(data)) {
		p, ok := d.Property(key)
		if !ok {
			continue
		}
		if !p.CanUpdate(role) {
			return apperr.NotAuthorized(key, "Not authorized to update the value")
		}
	}
	return nil
}

// Groups maps each group label to its property names.
// Properties without a label are grouped under the empty string.
func (d *Definition) Groups() map[string][]string {
	groups := make(map[string][]string)
	for _, p := range d.Properties() {
		label := p.GroupLabel()
		groups[label] = append(groups[label], p.Name)
	}
	return groups
}

// Property is a single declared schema property.
type Property struct {
	raw  map[string]any
	Name string
}

// Raw returns the property's JSON object.
func (p Property) Raw() map[string]any {
	return p.raw
}

// Type returns the JSON-Schema type, if it is a single string.
func (p Property) Type() string {
	return p.str("type")
}

// ValidatorList returns the raw space separated validator list, trimmed.
func (p Property) ValidatorList() string {
	return strings.TrimSpace(p.str("validators"))
}

// Validators returns the validator names in application order.
func (p Property) Validators() []string {
	return strings.Fields(p.ValidatorList())
}

// Show returns the roles allowed to see the property.
func (p Property) Show() []string {
	return strings.Fields(p.str("show"))
}

// Update returns the roles allowed to change the property.
func (p Property) Update() []string {
	return strings.Fields(p.str("update"))
}

// GroupLabel returns the UI group of the property.
func (p Property) GroupLabel() string {
	return p.str("group_label")
}

// CanShow reports whether role appears in the show list.
func (p Property) CanShow(role string) bool {
	return slices.Contains(p.Show(), role)
}

// CanUpdate reports whether role appears in the update list.
func (p Property) CanUpdate(role string) bool {
	return slices.Contains(p.Update(), role)
}

// Options returns the allow-list, or nil when the property has none.
func (p Property) Options() []Option {
	raw, ok := p.raw["options"].([]any)
	if !ok {
		return nil
	}
	out := make([]Option, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, _ := m["text"].(string)
		out = append(out, Option{Value: m["value"], Text: text})
	}
	return out
}

func (p Property) str(key string) string {
	s, _ := p.raw[key].(string)
	return s
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
