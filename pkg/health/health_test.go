package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/pkg/health"
)

func probe(t *testing.T, h http.HandlerFunc, accept string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) health.Response {
	t.Helper()

	var resp health.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	rec := probe(t, health.LivenessHandler(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, health.StatusHealthy, decode(t, rec).Status)
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	refused := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all healthy", func(t *testing.T) {
		t.Parallel()

		rec := probe(t, health.ReadinessHandler(health.Checks{"redis": ok}), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.True(t, resp.Healthy())
		assert.Equal(t, health.StatusHealthy, resp.Checks["redis"].Status)
	})

	t.Run("failing check", func(t *testing.T) {
		t.Parallel()

		rec := probe(t, health.ReadinessHandler(health.Checks{"ok": ok, "redis": refused}), "application/json")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decode(t, rec)
		assert.False(t, resp.Healthy())
		assert.Equal(t, health.StatusHealthy, resp.Checks["ok"].Status)
		assert.Equal(t, "connection refused", resp.Checks["redis"].Error)
	})

	tests := []struct {
		name   string
		accept string
		checks health.Checks
		code   int
		body   string
	}{
		{name: "plain healthy", accept: "text/plain", checks: health.Checks{"ok": ok}, code: http.StatusOK, body: health.StatusHealthy},
		{name: "plain unhealthy", accept: "text/plain; charset=utf-8", checks: health.Checks{"redis": refused}, code: http.StatusServiceUnavailable, body: health.StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := probe(t, health.ReadinessHandler(tt.checks), tt.accept)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}

	t.Run("mixed accept gets json", func(t *testing.T) {
		t.Parallel()

		rec := probe(t, health.ReadinessHandler(health.Checks{"ok": ok}), "text/plain, application/json")
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("timeout and nil check", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(t.Context(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			"nil": nil,
		}, health.WithTimeout(20*time.Millisecond))

		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Equal(t, health.ErrCheckTimeout.Error(), resp.Checks["slow"].Error)
		assert.Equal(t, health.ErrNilCheck.Error(), resp.Checks["nil"].Error)
	})

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()

		resp := health.Run(t.Context(), nil)
		assert.True(t, resp.Healthy())
		assert.Empty(t, resp.Checks)
	})
}
