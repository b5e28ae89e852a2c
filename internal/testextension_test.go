package internal_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/plugin"
	"github.com/emapp/emapp/pkg/route"
)

// apiExtension registers a handful of actions and mounts the API
// dispatcher at /api/v1/{action_name}.
type apiExtension struct {
	plugin.Base
	api http.Handler
}

func apiEntryPoint() plugin.EntryPoint {
	return plugin.EntryPoint{
		Name: "testapi",
		Load: func(r *plugin.Registries) (any, error) {
			return &apiExtension{api: r.API}, nil
		},
	}
}

func (e *apiExtension) AppAPIActions(r *action.Registry) error {
	echo := func(c *action.Context, data map[string]any) (any, error) {
		return map[string]any{
			"data":       data,
			"role":       c.Role,
			"request_id": c.RequestID,
			"files":      len(c.Files["avatar"]),
		}, nil
	}
	list := func(*action.Context, map[string]any) (any, error) {
		return []any{"a", "b"}, nil
	}
	invalid := func(*action.Context, map[string]any) (any, error) {
		return nil, apperr.Validation("id", "id parameter is required.")
	}
	broken := func(*action.Context, map[string]any) (any, error) {
		return nil, errors.New("connection reset")
	}

	return errors.Join(
		r.Register("echo", echo, "post"),
		r.Register("echo", echo, "get"),
		r.Register("list", list, "get"),
		r.Register("invalid", invalid, "post"),
		r.Register("broken", broken, "get"),
	)
}

func (e *apiExtension) AppRoute(r *route.Routes) error {
	return r.Register("app_api", route.Route{Pattern: "/api/v1/{action_name}", Handler: e.api})
}

// authenticateAs attaches p to every request.
func authenticateAs(p action.Principal) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(internal.PrincipalKey{}, p)
			c.Set(internal.RequestIDKey{}, "req-42")
			return next(c)
		}
	}
}

func newAPIApp(t *testing.T, opts ...internal.Option) *internal.App {
	t.Helper()

	opts = append([]internal.Option{
		internal.WithExtensions(apiEntryPoint()),
		internal.WithInstalledApps("testapi"),
	}, opts...)
	app, err := internal.New(opts...)
	require.NoError(t, err)
	return app
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
