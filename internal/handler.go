package internal

import "net/http"

// HandlerFunc serves a request. A returned error goes to the ErrorHandler
// unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
//
//	func RequireKey(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) error {
//	        if _, ok := c.Principal(); !ok {
//	            return apperr.NotAuthorized("api_key", "API key required")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler writes the response for a handler error.
type ErrorHandler func(Context, error) error

// Handler exposes h as an http.Handler using the application error
// handling.
func (a *App) Handler(h HandlerFunc) http.Handler {
	return a.wrapHandler(h)
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.serve(newContext(w, r, a.logger), h)
	}
}

func (a *App) serve(c Context, h HandlerFunc) {
	err := h(c)
	if err == nil || c.Written() {
		return
	}
	handle := a.errorHandler
	if handle == nil {
		handle = DefaultErrorHandler
	}
	_ = handle(c, err)
}

// adaptMiddleware turns mw into chi middleware. Values set by mw reach
// the next handler through the request context.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		forward := func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}
		h := mw(forward)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.serve(newContext(w, r, a.logger), h)
		})
	}
}
