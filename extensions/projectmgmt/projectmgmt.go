// Package projectmgmt is the project management extension: the department
// and project schemas and the actions creating and showing them.
//
// Department heads are checked with the check_if_user_exists validator, so
// the extension is installed after hrmgmt.
package projectmgmt

import (
	"embed"
	"log/slog"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/plugin"
	"github.com/emapp/emapp/pkg/schema"
	"github.com/emapp/emapp/pkg/utility"
)

// Name is the installed-app label of the extension.
const Name = "projectmgmt"

// Registered schema names.
const (
	DepartmentSchema = "department_schema"
	ProjectSchema    = "project_schema"
)

//go:embed schema/*.json
var schemaFS embed.FS

// Extension registers the project management components.
type Extension struct {
	plugin.Base
	schemas   *schema.Registry
	utilities *utility.Registry
	logger    *slog.Logger
	store     Store
}

// New creates the extension over r, keeping records in store.
// A nil store selects a new MemoryStore.
func New(r *plugin.Registries, store Store) *Extension {
	if store == nil {
		store = NewMemoryStore()
	}
	if r == nil {
		r = plugin.NewRegistries(nil, nil)
	}
	log := r.Logger
	if log == nil {
		log = logger.NewNope()
	}
	return &Extension{
		schemas:   r.Schemas,
		utilities: r.Utilities,
		logger:    log.With(slog.String("extension", Name)),
		store:     store,
	}
}

// EntryPoint returns the entry point of the extension with an in-memory
// store.
func EntryPoint() plugin.EntryPoint {
	return EntryPointWithStore(nil)
}

// EntryPointWithStore returns the entry point of the extension keeping
// records in store.
func EntryPointWithStore(store Store) plugin.EntryPoint {
	return plugin.EntryPoint{
		Name: Name,
		Load: func(r *plugin.Registries) (any, error) {
			return New(r, store), nil
		},
	}
}

// AppSchema registers the department and project schemas.
func (e *Extension) AppSchema(r *schema.Registry) error {
	schemas := []struct{ name, file string }{
		{name: DepartmentSchema, file: "department_schema.json"},
		{name: ProjectSchema, file: "project_schema.json"},
	}
	for _, s := range schemas {
		if err := r.Register(schemaFS, "schema", s.file, s.name); err != nil {
			return err
		}
	}
	return nil
}

// AppAPIActions registers the department and project actions.
func (e *Extension) AppAPIActions(r *action.Registry) error {
	actions := []struct {
		fn     action.Func
		name   string
		method action.Method
	}{
		{name: "create_department", fn: e.createDepartment, method: action.MethodPost},
		{name: "show_department", fn: e.showDepartment, method: action.MethodGet},
		{name: "create_project", fn: e.createProject, method: action.MethodPost},
		{name: "show_project", fn: e.showProject, method: action.MethodGet},
	}
	for _, a := range actions {
		if err := r.Register(a.name, a.fn, string(a.method)); err != nil {
			return err
		}
	}
	return nil
}
