package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/middlewares"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apikey"
	"github.com/emapp/emapp/pkg/apperr"
)

type failingStore struct {
	apikey.MemoryStore
}

func (*failingStore) FindByHash(context.Context, string) (apikey.Key, error) {
	return apikey.Key{}, apikey.ErrStoreFailed
}

func TestAPIKey(t *testing.T) {
	t.Parallel()

	store := apikey.NewMemoryStore()
	plain, _, err := apikey.Issue(context.Background(), store, action.Principal{ID: "emp-1", Role: "hr"})
	require.NoError(t, err)

	run := func(t *testing.T, mw internal.Middleware, header, value string) (action.Principal, bool, error) {
		t.Helper()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(header, value)
		}
		ctx := internal.NewContext(httptest.NewRecorder(), req, nil)

		var (
			p  action.Principal
			ok bool
		)
		err := mw(func(c internal.Context) error {
			p, ok = middlewares.GetPrincipal(c)
			return nil
		})(ctx)
		return p, ok, err
	}

	for _, header := range middlewares.DefaultAPIKeyHeaders {
		t.Run("valid key in "+header, func(t *testing.T) {
			t.Parallel()

			p, ok, err := run(t, middlewares.APIKey(store), header, plain)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "emp-1", p.ID)
			assert.Equal(t, "hr", p.Role)
		})
	}

	t.Run("valid key in authorization header", func(t *testing.T) {
		t.Parallel()

		p, ok, err := run(t, middlewares.APIKey(store), "Authorization", "api-key "+plain)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "emp-1", p.ID)

		_, ok, err = run(t, middlewares.APIKey(store), "Authorization", "Bearer "+plain)
		require.NoError(t, err)
		assert.False(t, ok, "other schemes are not api keys")
	})

	t.Run("missing key passes through anonymously", func(t *testing.T) {
		t.Parallel()

		_, ok, err := run(t, middlewares.APIKey(store), "", "")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("missing key rejected when required", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, middlewares.APIKey(store, middlewares.WithAPIKeyRequired()), "", "")
		require.ErrorIs(t, err, apperr.ErrNotAuthorized)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, middlewares.APIKey(store), "X-API-KEY", "emk_unknown")
		require.ErrorIs(t, err, apperr.ErrNotAuthorized)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, middlewares.APIKey(&failingStore{}), "X-API-KEY", "emk_any")
		require.ErrorIs(t, err, apikey.ErrStoreFailed)
		require.False(t, errors.Is(err, apperr.ErrNotAuthorized))
	})

	t.Run("custom lookup", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.APIKey(store, middlewares.WithAPIKeyLookup(internal.FromQuery("api_key")))
		req := httptest.NewRequest(http.MethodGet, "/?api_key="+plain, nil)
		ctx := internal.NewContext(httptest.NewRecorder(), req, nil)

		var ok bool
		require.NoError(t, mw(func(c internal.Context) error {
			_, ok = c.Principal()
			return nil
		})(ctx))
		require.True(t, ok)
	})
}
