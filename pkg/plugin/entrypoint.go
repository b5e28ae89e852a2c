package plugin

import (
	"slices"

	"github.com/emapp/emapp/pkg/apperr"
)

// Group is the entry point group extensions are published under.
const Group = "emapp.register"

// EntryPoint is a discoverable extension. Load builds the extension;
// the result must implement Core, Routes, or both.
type EntryPoint struct {
	Load  func(r *Registries) (any, error)
	Name  string
	Group string
}

// Catalog is the ordered set of entry points known to the binary.
type Catalog struct {
	entries []EntryPoint
}

// NewCatalog creates a catalog from entries. Entries with an empty
// group are placed in Group.
func NewCatalog(entries ...EntryPoint) *Catalog {
	c := &Catalog{}
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Add appends an entry point.
func (c *Catalog) Add(e EntryPoint) {
	if e.Group == "" {
		e.Group = Group
	}
	c.entries = append(c.entries, e)
}

// Entries returns every entry point in insertion order.
func (c *Catalog) Entries() []EntryPoint {
	return slices.Clone(c.entries)
}

// Installed returns the entry points of Group whose name is one of
// installed, in catalog order. Other entry points are ignored.
func (c *Catalog) Installed(installed []string) []EntryPoint {
	var out []EntryPoint
	for _, e := range c.entries {
		if e.Group == Group && slices.Contains(installed, e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// Build loads the extension behind e and checks it implements at least
// one registration interface.
func (e EntryPoint) Build(r *Registries) (any, error) {
	if e.Load == nil {
		return nil, apperr.AppPlugin(e.Name, "entry point has no loader")
	}
	ext, err := e.Load(r)
	if err != nil {
		return nil, err
	}
	_, isCore := ext.(Core)
	_, isRoutes := ext.(Routes)
	if !isCore && !isRoutes {
		return nil, apperr.AppPlugin(e.Name, "extension must implement the core or route interface")
	}
	return ext, nil
}
