package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/internal"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lookup  internal.Lookup
		target  string
		headers map[string]string
		want    string
	}{
		{
			name:   "empty chain",
			lookup: internal.Lookup{},
			target: "/",
		},
		{
			name:    "first source wins",
			lookup:  internal.HeaderLookup("X-First", "X-Second"),
			target:  "/",
			headers: map[string]string{"X-First": "first", "X-Second": "second"},
			want:    "first",
		},
		{
			name:    "blank value falls through",
			lookup:  internal.HeaderLookup("X-First", "X-Second"),
			target:  "/",
			headers: map[string]string{"X-First": "  ", "X-Second": "second"},
			want:    "second",
		},
		{
			name:   "query parameter",
			lookup: internal.Lookup{nil, internal.FromHeader("X-Key"), internal.FromQuery("key")},
			target: "/?key=abc",
			want:   "abc",
		},
		{
			name:   "empty query parameter",
			lookup: internal.Lookup{internal.FromQuery("key")},
			target: "/?key=",
		},
		{
			name:    "authorization scheme",
			lookup:  internal.Lookup{internal.FromAuthorization("Api-Key")},
			target:  "/",
			headers: map[string]string{"Authorization": "API-KEY emk_123"},
			want:    "emk_123",
		},
		{
			name:    "other authorization scheme",
			lookup:  internal.Lookup{internal.FromAuthorization("Api-Key")},
			target:  "/",
			headers: map[string]string{"Authorization": "Bearer emk_123"},
		},
		{
			name:    "scheme without credential",
			lookup:  internal.Lookup{internal.FromAuthorization("Api-Key")},
			target:  "/",
			headers: map[string]string{"Authorization": "Api-Key"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			requestVia(t, req, nil, func(c internal.Context) {
				got, ok := tt.lookup.Find(c)
				assert.Equal(t, tt.want != "", ok)
				require.Equal(t, tt.want, got)
			})
		})
	}
}
