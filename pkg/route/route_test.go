package route_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/route"
)

func text(s string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(s))
	})
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRoutesRegister(t *testing.T) {
	t.Parallel()

	t.Run("missing url key", func(t *testing.T) {
		t.Parallel()
		r := route.NewRoutes(nil)
		err := r.Register("", route.Route{Pattern: "/x", Handler: text("x")})
		require.ErrorIs(t, err, apperr.ErrAppPlugin)
		require.Empty(t, r.Keys())
	})

	t.Run("missing handler", func(t *testing.T) {
		t.Parallel()
		r := route.NewRoutes(nil)
		require.ErrorIs(t, r.Register("x", route.Route{Pattern: "/x"}), apperr.ErrAppPlugin)
		require.ErrorIs(t, r.Register("x", route.Route{Handler: text("x")}), apperr.ErrAppPlugin)
		require.Empty(t, r.Keys())
	})

	t.Run("unsupported method", func(t *testing.T) {
		t.Parallel()
		r := route.NewRoutes(nil)
		err := r.Register("fetch", route.Route{Method: "fetch", Pattern: "/x", Handler: text("x")})
		require.ErrorIs(t, err, apperr.ErrAppPlugin)
		require.Empty(t, r.Keys())

		require.NotPanics(t, func() { r.Mount(chi.NewRouter()) })
	})

	t.Run("overwrite keeps position and last value", func(t *testing.T) {
		t.Parallel()
		r := route.NewRoutes(nil)
		require.NoError(t, r.Register("profile", route.Route{Pattern: "profile/", Handler: text("first")}))
		require.NoError(t, r.Register("search", route.Route{Pattern: "/search/", Handler: text("search")}))
		require.NoError(t, r.Register("profile", route.Route{Pattern: "/me/", Handler: text("second"), Name: "me"}))

		require.Equal(t, []string{"profile", "search"}, r.Keys())
		routes := r.Routes()
		require.Len(t, routes, 2)
		require.Equal(t, "/me/", routes[0].Pattern)

		u, ok := r.URL("me")
		require.True(t, ok)
		require.Equal(t, "/me/", u)
		u, ok = r.URL("search")
		require.True(t, ok)
		require.Equal(t, "/search/", u)
	})
}

func TestRoutesMount(t *testing.T) {
	t.Parallel()

	r := route.NewRoutes(nil)
	require.NoError(t, r.Register("profile", route.Route{Method: "get", Pattern: "/profile/", Handler: text("old")}))
	require.NoError(t, r.Register("profile", route.Route{Method: "GET", Pattern: "/profile/", Handler: text("new")}))
	require.NoError(t, r.Register("any", route.Route{Pattern: "/any", Handler: text("any")}))

	router := chi.NewRouter()
	r.Mount(router)

	rec := serve(router, http.MethodGet, "/profile/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "new", rec.Body.String())

	rec = serve(router, http.MethodPost, "/profile/")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(router, http.MethodDelete, "/any")
	require.Equal(t, "any", rec.Body.String())
}

func TestRedirects(t *testing.T) {
	t.Parallel()

	t.Run("unsupported dispatcher type", func(t *testing.T) {
		t.Parallel()
		r := route.NewRedirects(nil)
		err := r.Register("/", "/profile/", "include")
		require.ErrorIs(t, err, apperr.ErrAppPlugin)
		require.Empty(t, r.Redirects())
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		for _, typ := range []string{"path", "re_path"} {
			r := route.NewRedirects(nil)
			require.ErrorIs(t, r.Register("", "/elsewhere/", typ), apperr.ErrAppPlugin, typ)
			require.Empty(t, r.Redirects(), typ)

			router := chi.NewRouter()
			r.Mount(router)
			router.NotFound(r.Fallback(text("nothing here")).ServeHTTP)
			rec := serve(router, http.MethodGet, "/any/unrelated/page")
			require.Equal(t, http.StatusNotFound, rec.Code, typ)
		}
	})

	t.Run("path sources share one entry", func(t *testing.T) {
		t.Parallel()
		r := route.NewRedirects(nil)
		require.NoError(t, r.Register("profile/", "/old/", "path"))
		require.NoError(t, r.Register("/profile/", "/new/", "path"))

		require.Len(t, r.Redirects(), 1)
		rd, ok := r.Lookup("profile/")
		require.True(t, ok)
		require.Equal(t, "/new/", rd.To)
		require.Equal(t, "/profile/", rd.From)
	})

	t.Run("invalid regexp", func(t *testing.T) {
		t.Parallel()
		r := route.NewRedirects(nil)
		require.ErrorIs(t, r.Register("(", "/x", "re_path"), apperr.ErrAppPlugin)
	})

	t.Run("path and re_path", func(t *testing.T) {
		t.Parallel()
		r := route.NewRedirects(nil)
		require.NoError(t, r.Register("/", "/home/", "path"))
		require.NoError(t, r.Register("/", "/profile/", "path"))
		require.NoError(t, r.Register(`^old/\d+$`, "/profile/", "re_path"))

		rd, ok := r.Lookup("/")
		require.True(t, ok)
		require.Equal(t, "/profile/", rd.To)
		require.Len(t, r.Redirects(), 2)

		router := chi.NewRouter()
		r.Mount(router)
		router.NotFound(r.Fallback(text("nothing here")).ServeHTTP)

		rec := serve(router, http.MethodGet, "/")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/profile/", rec.Header().Get("Location"))

		rec = serve(router, http.MethodGet, "/old/42")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/profile/", rec.Header().Get("Location"))

		rec = serve(router, http.MethodGet, "/old/abc")
		require.Equal(t, "nothing here", rec.Body.String())
	})
}
