package route

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/registry"
)

// DispatcherType selects how a redirect source is matched.
type DispatcherType string

const (
	// Path matches the request path exactly (chi patterns are allowed).
	Path DispatcherType = "path"

	// RePath matches the request path, without its leading slash,
	// against a regular expression.
	RePath DispatcherType = "re_path"
)

// Redirect is a temporary redirect from one URL to another.
type Redirect struct {
	re   *regexp.Regexp
	From string
	To   string
	Type DispatcherType
}

// Redirects collects redirects keyed by source URL.
type Redirects struct {
	logger    *slog.Logger
	redirects *registry.Store[Redirect]
}

// NewRedirects creates an empty redirect registry.
// A nil logger disables logging.
func NewRedirects(log *slog.Logger) *Redirects {
	if log == nil {
		log = logger.NewNope()
	}
	return &Redirects{
		logger:    log.With(slog.String("registry", "redirect")),
		redirects: registry.New[Redirect](),
	}
}

// Register adds a redirect from fromURL to toURL.
// dispatcherType must be "path" or "re_path". Path sources are stored
// under their slash-prefixed form.
func (r *Redirects) Register(fromURL, toURL, dispatcherType string) error {
	if fromURL == "" {
		return apperr.AppPlugin("from_url", "No from_url is given in url redirects")
	}
	rd := Redirect{From: fromURL, To: toURL, Type: DispatcherType(dispatcherType)}

	switch rd.Type {
	case Path:
		rd.From = normalizePath(fromURL)
	case RePath:
		re, err := regexp.Compile(fromURL)
		if err != nil {
			return apperr.Wrap(apperr.KindAppPlugin, err, map[string]any{
				"redirects": "invalid re_path pattern",
				"msg":       err.Error(),
			})
		}
		rd.re = re
	default:
		return apperr.New(apperr.KindAppPlugin, map[string]any{
			"redirects": "error in dispatcher_type",
			"msg":       "Supported types are path or re_path",
		})
	}
	if toURL == "" {
		return apperr.AppPlugin("redirects", "redirect target is required")
	}

	if r.redirects.Put(rd.From, rd) {
		r.logger.Warn("overwriting the existing url redirect", slog.String("from", rd.From), slog.String("to", toURL))
	} else {
		r.logger.Info("adding redirect", slog.String("from", rd.From), slog.String("to", toURL))
	}
	return nil
}

// Lookup returns the redirect registered for fromURL, trying the
// slash-prefixed path form when the raw source is not stored.
func (r *Redirects) Lookup(fromURL string) (Redirect, bool) {
	if rd, ok := r.redirects.Get(fromURL); ok {
		return rd, true
	}
	return r.redirects.Get(normalizePath(fromURL))
}

// Redirects returns the effective redirects in first-registration order.
func (r *Redirects) Redirects() []Redirect {
	return r.redirects.Values()
}

// Mount adds path redirects to router as routes.
// re_path redirects are served by [Redirects.Fallback].
func (r *Redirects) Mount(router chi.Router) {
	r.redirects.Each(func(_ string, rd Redirect) bool {
		if rd.Type == Path {
			router.Handle(rd.From, http.RedirectHandler(rd.To, http.StatusFound))
		}
		return true
	})
}

// Fallback returns a handler that tries re_path redirects in order and
// delegates to next when none matches.
func (r *Redirects) Fallback(next http.Handler) http.Handler {
	var patterns []Redirect
	r.redirects.Each(func(_ string, rd Redirect) bool {
		if rd.Type == RePath {
			patterns = append(patterns, rd)
		}
		return true
	})
	if next == nil {
		next = http.NotFoundHandler()
	}
	if len(patterns) == 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		p := strings.TrimPrefix(req.URL.Path, "/")
		for _, rd := range patterns {
			if rd.re.MatchString(p) {
				http.Redirect(w, req, rd.To, http.StatusFound)
				return
			}
		}
		next.ServeHTTP(w, req)
	})
}
