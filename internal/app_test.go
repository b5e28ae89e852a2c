package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/health"
	"github.com/emapp/emapp/pkg/plugin"
	"github.com/emapp/emapp/pkg/route"
)

// pagesExtension registers pages and redirects.
type pagesExtension struct {
	plugin.Base
}

func (pagesExtension) AppRedirects(r *route.Redirects) error {
	return errors.Join(
		r.Register("/", "/profile/", "path"),
		r.Register("^legacy/.*$", "/profile/", "re_path"),
	)
}

func (pagesExtension) AppRoute(r *route.Routes) error {
	return r.Register("profile", route.Route{
		Pattern: "/profile/",
		Method:  http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("profile"))
		}),
	})
}

func namedEntry(name string, ext any, loaded *[]string) plugin.EntryPoint {
	return plugin.EntryPoint{
		Name: name,
		Load: func(*plugin.Registries) (any, error) {
			if loaded != nil {
				*loaded = append(*loaded, name)
			}
			return ext, nil
		},
	}
}

func TestNew_Settings(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, internal.WithSettings(config.Values(map[string]any{
		config.CompanyName: "Acme",
		"lower_case":       "skipped",
	})))

	cfg := app.Config()
	assert.Equal(t, "Acme", cfg.String(config.CompanyName, ""))
	assert.Equal(t, "EMApp", cfg.String(config.ApplicationShortTitle, ""))
	assert.False(t, cfg.Has("lower_case"))
	require.ErrorIs(t, cfg.Set(config.CompanyName, "Other"), config.ErrKeyExists)
}

func TestNew_SettingsSourceError(t *testing.T) {
	t.Parallel()

	_, err := internal.New(internal.WithSettings(config.YAMLFile("/nonexistent/emapp.yaml", false)))
	require.ErrorIs(t, err, config.ErrSettingsFile)
}

func TestNew_Discovery(t *testing.T) {
	t.Parallel()

	t.Run("installed apps setting selects extensions in catalog order", func(t *testing.T) {
		t.Parallel()

		var loaded []string
		app, err := internal.New(
			internal.WithExtensions(
				namedEntry("a", plugin.Base{}, &loaded),
				namedEntry("b", plugin.Base{}, &loaded),
				namedEntry("c", plugin.Base{}, &loaded),
			),
			internal.WithSettings(config.Values(map[string]any{
				config.InstalledApps: []any{"c", "a", "missing"},
			})),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, loaded)
		assert.Equal(t, []string{"a", "c"}, app.Extensions())
	})

	t.Run("option overrides setting", func(t *testing.T) {
		t.Parallel()

		var loaded []string
		_, err := internal.New(
			internal.WithExtensions(namedEntry("a", plugin.Base{}, &loaded), namedEntry("b", plugin.Base{}, &loaded)),
			internal.WithInstalledApps("b"),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, loaded)
	})

	t.Run("other groups are ignored", func(t *testing.T) {
		t.Parallel()

		var loaded []string
		ep := namedEntry("a", plugin.Base{}, &loaded)
		ep.Group = "other.group"
		_, err := internal.New(internal.WithExtensions(ep), internal.WithInstalledApps("a"))
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}

func TestNew_RegistrationErrors(t *testing.T) {
	t.Parallel()

	t.Run("extension without interfaces", func(t *testing.T) {
		t.Parallel()

		_, err := internal.New(
			internal.WithExtensions(namedEntry("bad", struct{}{}, nil)),
			internal.WithInstalledApps("bad"),
		)
		require.ErrorIs(t, err, apperr.ErrAppPlugin)
	})

	t.Run("loader error aborts startup", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := internal.New(
			internal.WithExtensions(plugin.EntryPoint{
				Name: "broken",
				Load: func(*plugin.Registries) (any, error) { return nil, boom },
			}),
			internal.WithInstalledApps("broken"),
		)
		require.ErrorIs(t, err, boom)
	})

	t.Run("registration step error aborts startup", func(t *testing.T) {
		t.Parallel()

		_, err := internal.New(
			internal.WithExtensions(namedEntry("redirects", badRedirects{}, nil)),
			internal.WithInstalledApps("redirects"),
		)
		require.ErrorIs(t, err, apperr.ErrAppPlugin)
		assert.Contains(t, err.Error(), "extension redirects: redirects")
	})
}

type badRedirects struct {
	plugin.Base
}

func (badRedirects) AppRedirects(r *route.Redirects) error {
	return r.Register("/a", "/b", "regex")
}

func TestBootstrap_SetupTwice(t *testing.T) {
	t.Parallel()

	regs := plugin.NewRegistries(config.New(), nil)
	boot := internal.NewBootstrap(regs, nil, []string{})
	settings := config.Settings{config.CompanyName: "Acme"}

	require.NoError(t, boot.Setup(settings))
	require.ErrorIs(t, boot.Setup(settings), config.ErrKeyExists)
}

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	app := newTestApp(t,
		internal.WithExtensions(namedEntry("pages", pagesExtension{}, nil)),
		internal.WithInstalledApps("pages"),
	)

	t.Run("route", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/profile/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "profile", w.Body.String())
	})

	t.Run("path redirect", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/", w.Header().Get("Location"))
	})

	t.Run("re_path redirect", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/legacy/page", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/", w.Header().Get("Location"))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Page not found", body["msg"])
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodPost, "/profile/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestApp_CustomHandlers(t *testing.T) {
	t.Parallel()

	app := newTestApp(t,
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "custom")
		}),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			return c.String(http.StatusTeapot, err.Error())
		}),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, "custom", w.Body.String())

	w = httptest.NewRecorder()
	app.Handler(func(internal.Context) error {
		return errors.New("handled")
	}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "handled", w.Body.String())
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	readiness := func(t *testing.T, app http.Handler) health.Response {
		t.Helper()
		w := serve(app, httptest.NewRequest(http.MethodGet, "/ready", nil))
		var resp health.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()

		app := newAPIApp(t, internal.WithHealthChecks(
			internal.WithReadinessPath("/ready"),
			internal.WithReadinessCheck("redis", func(context.Context) error { return errors.New("down") }),
		))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = serve(app, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := readiness(t, app)
		assert.Equal(t, "down", resp.Checks["redis"].Error)
		assert.Equal(t, health.StatusHealthy, resp.Checks[internal.ExtensionsCheck].Status)
	})

	t.Run("no extensions loaded", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t, internal.WithHealthChecks(internal.WithReadinessPath("/ready")))
		resp := readiness(t, app)
		assert.False(t, resp.Healthy())
		assert.Equal(t, health.StatusUnhealthy, resp.Checks[internal.ExtensionsCheck].Status)
	})

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		app := newAPIApp(t, internal.WithHealthChecks(internal.WithReadinessPath("/ready")))
		w := serve(app, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	var hooks atomic.Int32
	app := newTestApp(t, internal.WithShutdownHook(func(context.Context) error {
		hooks.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.ShutdownTimeout(time.Second),
			internal.ShutdownHook(func(context.Context) error {
				hooks.Add(1)
				return nil
			}),
		)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, int32(2), hooks.Load())
}
