package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/logger"
)

// PrincipalKey stores the authenticated action.Principal in the request
// context.
type PrincipalKey struct{}

// RequestIDKey stores the request id in the request context.
type RequestIDKey struct{}

// Context is the request seen by handlers and middleware. It is itself a
// context.Context over the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	// Param returns a chi URL parameter.
	Param(name string) string
	Query(name string) string
	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	Redirect(code int, url string) error

	// Written reports whether the status line has been sent.
	Written() bool
	// Status is the status sent, or 0 while nothing is written.
	Status() int

	Logger() *slog.Logger
	// Log writes a record carrying the request context attributes.
	Log(level slog.Level, msg string, attrs ...slog.Attr)

	// Set stores a value in the request context.
	Set(key, value any)
	Get(key any) any

	// Principal returns the user authenticated by API key.
	Principal() (action.Principal, bool)
	// RequestID returns the id assigned by the RequestID middleware.
	RequestID() string
}

// NewContext wraps a request. Wrapping a response writer created by
// another Context shares its written state. A nil log discards records.
func NewContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) Context {
	return newContext(w, r, log)
}

type requestContext struct {
	w   *trackedWriter
	r   *http.Request
	log *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, log *slog.Logger) *requestContext {
	tw, ok := w.(*trackedWriter)
	if !ok {
		tw = &trackedWriter{ResponseWriter: w}
	}
	if log == nil {
		log = logger.NewNope()
	}
	return &requestContext{w: tw, r: r, log: log}
}

func (c *requestContext) Request() *http.Request        { return c.r }
func (c *requestContext) Response() http.ResponseWriter { return c.w }
func (c *requestContext) Context() context.Context      { return c.r.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *requestContext) Err() error                  { return c.r.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.r.Context().Value(key) }

func (c *requestContext) Param(name string) string  { return chi.URLParam(c.r, name) }
func (c *requestContext) Query(name string) string  { return c.r.URL.Query().Get(name) }
func (c *requestContext) Header(name string) string { return c.r.Header.Get(name) }

func (c *requestContext) SetHeader(name, value string) {
	c.w.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(code)
	_, err = c.w.Write(append(body, '\n'))
	return err
}

func (c *requestContext) String(code int, s string) error {
	c.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.w.WriteHeader(code)
	_, err := c.w.Write([]byte(s))
	return err
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *requestContext) Written() bool { return c.w.status != 0 }
func (c *requestContext) Status() int   { return c.w.status }

func (c *requestContext) Logger() *slog.Logger { return c.log }

func (c *requestContext) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	c.log.LogAttrs(c.r.Context(), level, msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.r.Context().Value(key)
}

func (c *requestContext) Principal() (action.Principal, bool) {
	p, ok := c.Get(PrincipalKey{}).(action.Principal)
	return p, ok && p.Authenticated
}

func (c *requestContext) RequestID() string {
	id, _ := c.Get(RequestIDKey{}).(string)
	return id
}

// trackedWriter remembers the first status sent and drops later ones.
type trackedWriter struct {
	http.ResponseWriter
	status int
}

func (w *trackedWriter) WriteHeader(code int) {
	if w.status != 0 {
		return
	}
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackedWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *trackedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
