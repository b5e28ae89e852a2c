package hrmgmt_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/extensions/core"
	"github.com/emapp/emapp/extensions/hrmgmt"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/plugin"
)

// setup registers the core and HR extensions over fresh registries.
func setup(t *testing.T) (*plugin.Registries, *hrmgmt.MemoryStore) {
	t.Helper()

	cfg := config.New()
	require.NoError(t, cfg.Load(config.Defaults()))
	regs := plugin.NewRegistries(cfg, nil)
	regs.API = http.NotFoundHandler()

	store := hrmgmt.NewMemoryStore()
	for _, ep := range []plugin.EntryPoint{core.EntryPoint(), hrmgmt.EntryPointWithStore(store)} {
		ext, err := ep.Build(regs)
		require.NoError(t, err)
		require.NoError(t, plugin.RunCoreSequence(ep.Name, ext.(plugin.Core), regs))
		require.NoError(t, plugin.RunRouteSequence(ep.Name, ext.(plugin.Routes), regs))
	}
	return regs, store
}

func employeeData(employeeID, email, role string) map[string]any {
	return map[string]any{
		"employee_id":       employeeID,
		"first_name":        "john",
		"last_name":         "bhat",
		"date_of_birth":     "1992-07-09",
		"work_email":        email,
		"nationality_code":  "in",
		"joining_date":      "2018-10-01",
		"position":          "Senior Software Developer",
		"work_country_code": "ie",
		"work_address":      "Dublin",
		"skills":            []any{"management", "python"},
		"experience":        "4",
		"role":              role,
	}
}

// seed stores an employee without going through the create action.
func seed(t *testing.T, store *hrmgmt.MemoryStore, employeeID, email, role string) hrmgmt.Employee {
	t.Helper()

	emp, err := store.Create(employeeData(employeeID, email, role), "")
	require.NoError(t, err)
	return emp
}

func actingAs(t *testing.T, p action.Principal) *action.Context {
	t.Helper()

	p.Authenticated = true
	return action.NewContext(t.Context(), "test").WithPrincipal(p)
}

func anonymous(t *testing.T) *action.Context {
	t.Helper()
	return action.NewContext(t.Context(), "test")
}

func run(t *testing.T, regs *plugin.Registries, method, name string, c *action.Context, data map[string]any) (map[string]any, error) {
	t.Helper()

	got, err := regs.Actions.Run(method, name, c, data)
	if err != nil {
		return nil, err
	}
	m, ok := got.(map[string]any)
	require.True(t, ok, "%T", got)
	return m, nil
}
