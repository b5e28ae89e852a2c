// Package middlewares provides HTTP middleware for EMApp applications.
//
// # Request ID
//
// RequestID assigns a unique ID to each request. It reuses an incoming
// X-Request-ID header or generates a UUID. API actions receive the ID as
// action.Context.RequestID.
//
//	app, err := emapp.New(
//	    emapp.WithLogger(logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())),
//	    emapp.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover catches panics and reports them as InternalServerError, wrapping a
// PanicError that carries the panic value and stack:
//
//	emapp.WithErrorHandler(func(c emapp.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.Log(slog.LevelError, "panic", slog.Any("value", pe.Value))
//	    }
//	    return emapp.DefaultErrorHandler(c, err)
//	})
//
// # API Key
//
// APIKey resolves the X-API-KEY or Api-Key header against an apikey.Store
// and attaches the key owner as the request principal. Requests without a
// key pass through; the API dispatcher rejects them unless anonymous access
// is enabled.
//
//	store := apikey.NewRedisStore(client, apikey.DefaultRedisPrefix)
//	emapp.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	    middlewares.APIKey(store),
//	)
package middlewares
