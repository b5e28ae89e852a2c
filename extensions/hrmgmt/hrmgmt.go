// Package hrmgmt is the HR management extension: the employee schema, the
// employee API actions with their authorization rules, the employee
// validators and utilities, and the JSON profile pages.
package hrmgmt

import (
	"embed"
	"log/slog"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/plugin"
	"github.com/emapp/emapp/pkg/schema"
	"github.com/emapp/emapp/pkg/utility"
	"github.com/emapp/emapp/pkg/validator"
)

// Name is the installed-app label of the extension.
const Name = "hrmgmt"

// SchemaName is the registered name of the employee schema.
const SchemaName = "employee_schema"

//go:embed schema/*.json
var schemaFS embed.FS

// Extension registers the HR management components.
type Extension struct {
	plugin.Base
	cfg        *config.Registry
	schemas    *schema.Registry
	validators *validator.Registry
	logger     *slog.Logger
	store      Store
}

// New creates the extension over r, keeping employees in store.
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
		cfg:        r.Config,
		schemas:    r.Schemas,
		validators: r.Validators,
		logger:     log.With(slog.String("extension", Name)),
		store:      store,
	}
}

// EntryPoint returns the entry point of the extension with an in-memory
// employee directory.
func EntryPoint() plugin.EntryPoint {
	return EntryPointWithStore(nil)
}

// EntryPointWithStore returns the entry point of the extension keeping
// employees in store.
func EntryPointWithStore(store Store) plugin.EntryPoint {
	return plugin.EntryPoint{
		Name: Name,
		Load: func(r *plugin.Registries) (any, error) {
			return New(r, store), nil
		},
	}
}

// Store returns the employee store.
func (e *Extension) Store() Store {
	return e.store
}

// AppSchema registers the employee schema.
func (e *Extension) AppSchema(r *schema.Registry) error {
	return r.Register(schemaFS, "schema", "employee_schema.json", SchemaName)
}

// AppAPIActions registers the employee actions.
func (e *Extension) AppAPIActions(r *action.Registry) error {
	actions := []struct {
		fn     action.Func
		name   string
		method action.Method
	}{
		{name: "create_employee", fn: e.createEmployee, method: action.MethodPost},
		{name: "update_employee", fn: e.updateEmployee, method: action.MethodPost},
		{name: "show_employee", fn: e.showEmployee, method: action.MethodGet},
		{name: "search_employee", fn: e.searchEmployee, method: action.MethodGet},
		{name: "delete_employee", fn: e.deleteEmployee, method: action.MethodPost},
		{name: "suggestion_employee_index", fn: e.suggestEmployee, method: action.MethodGet},
	}
	for _, a := range actions {
		if err := r.Register(a.name, a.fn, string(a.method)); err != nil {
			return err
		}
	}
	return nil
}

// AppValidators registers the employee validators.
func (e *Extension) AppValidators(r *validator.Registry) error {
	validators := []validator.Named{
		{Name: ValidateExistingUser, Func: e.validateExistingUser},
		{Name: CheckIfUserExists, Func: e.checkIfUserExists},
		{Name: ValidateAvatarFile, Func: e.validateAvatarFile},
	}
	for _, v := range validators {
		if err := r.Register(v.Name, v.Func); err != nil {
			return err
		}
	}
	return nil
}

// AppUtilities registers the employee utilities.
func (e *Extension) AppUtilities(r *utility.Registry) error {
	utilities := []struct {
		fn   utility.Func
		name string
	}{
		{name: "get_user_given_email", fn: e.userGivenEmail},
		{name: "get_user_full_name", fn: userFullName},
		{name: "get_schema_groups", fn: e.schemaGroups},
		{name: "employee_verify_access", fn: e.verifyAccess},
		{name: "get_total_employee_count", fn: e.totalEmployeeCount},
		{name: "convert_string_to_html_id", fn: stringToHTMLID},
		{name: "convert_list_to_comma_separated_text", fn: listToCommaSeparatedText},
	}
	for _, u := range utilities {
		if err := r.Register(u.name, u.fn); err != nil {
			return err
		}
	}
	return nil
}
