package middlewares

import (
	"errors"
	"log/slog"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apikey"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
)

// DefaultAPIKeyHeaders are the headers checked (in order) for an API key.
var DefaultAPIKeyHeaders = []string{"X-API-KEY", "Api-Key"}

// APIKeyScheme is the Authorization scheme accepted after the headers,
// as in "Authorization: Api-Key <key>".
const APIKeyScheme = "Api-Key"

// APIKeyOption configures the API key middleware.
type APIKeyOption func(*apiKeyConfig)

type apiKeyConfig struct {
	lookup   internal.Lookup
	required bool
}

// WithAPIKeyLookup replaces the default chain of key sources.
func WithAPIKeyLookup(sources ...internal.Source) APIKeyOption {
	return func(cfg *apiKeyConfig) {
		cfg.lookup = sources
	}
}

// WithAPIKeyRequired rejects requests that carry no key at all.
// By default they pass through anonymously.
func WithAPIKeyRequired() APIKeyOption {
	return func(cfg *apiKeyConfig) {
		cfg.required = true
	}
}

// APIKey returns middleware that resolves the request's API key against
// store and attaches the owning principal to the context.
// A key that does not resolve is rejected with NotAuthorized.
func APIKey(store apikey.Store, opts ...APIKeyOption) internal.Middleware {
	lookup := append(internal.HeaderLookup(DefaultAPIKeyHeaders...), internal.FromAuthorization(APIKeyScheme))
	cfg := &apiKeyConfig{lookup: lookup}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			plain, ok := cfg.lookup.Find(c)
			if !ok {
				if cfg.required {
					return apperr.NotAuthorized("api_key", "Authentication credentials were not provided.")
				}
				return next(c)
			}

			principal, err := apikey.Resolve(c, store, plain)
			switch {
			case errors.Is(err, apikey.ErrKeyNotFound), errors.Is(err, apikey.ErrEmptyKey):
				c.Log(slog.LevelInfo, "api key rejected")
				return apperr.NotAuthorized("api_key", "Invalid API key.")
			case err != nil:
				c.Log(slog.LevelError, "api key lookup failed", logger.Error(err))
				return err
			}

			c.Set(internal.PrincipalKey{}, principal)
			c.Log(slog.LevelDebug, "api key accepted", slog.String("user_id", principal.ID))
			return next(c)
		}
	}
}

// GetPrincipal returns the principal attached by APIKey.
func GetPrincipal(c internal.Context) (action.Principal, bool) {
	return c.Principal()
}
