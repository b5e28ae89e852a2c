// Package logger builds the application's structured slog loggers.
//
// Records are written as JSON to stdout. [ContextExtractor] functions add
// request-scoped attributes such as the request id on every call:
//
//	log := logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "action dispatched", slog.String("action", name))
//
// When SENTRY_DSN is configured, [NewWithSentry] also forwards warnings as
// Sentry logs and errors as Sentry events. Without a DSN it behaves like [New].
//
// [NewNope] is the default for every registry built without a logger.
package logger
