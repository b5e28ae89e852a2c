package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/logger"
)

// ActionParam is the route parameter holding the action name.
const ActionParam = "action_name"

const (
	maxJSONBodyBytes     = 10 << 20
	maxMultipartMemory   = 32 << 20
	contentTypeJSON      = "application/json"
	contentTypeMultipart = "multipart/form-data"
)

// SuccessBody is the JSON envelope of a successful action.
type SuccessBody struct {
	Status     string `json:"status"`
	ActionName string `json:"action_name"`
	Count      *int   `json:"count,omitempty"`
	Result     any    `json:"result"`
}

// Dispatcher serves every registered API action behind one route.
// The action is selected by the action_name route parameter and the
// lower-cased request method.
type Dispatcher struct {
	actions        *action.Registry
	allowAnonymous bool
}

// NewDispatcher creates a dispatcher over actions. Unless allowAnonymous
// is set, requests without an authenticated principal are rejected.
func NewDispatcher(actions *action.Registry, allowAnonymous bool) *Dispatcher {
	return &Dispatcher{actions: actions, allowAnonymous: allowAnonymous}
}

// Handle is the HandlerFunc for the API route.
func (d *Dispatcher) Handle(c Context) error {
	name := c.Param(ActionParam)
	c.Log(slog.LevelInfo, "requested api action", slog.String("action", name))

	principal, authenticated := c.Principal()
	if !authenticated && !d.allowAnonymous {
		return apperr.NotAuthorized("api_key", "Authentication credentials were not provided.")
	}

	r := c.Request()
	mediaType, err := requestMediaType(r)
	if err != nil {
		return err
	}

	ac := action.NewContext(logger.WithContextAttrs(c.Context(), slog.String("action", name)), name)
	ac.RequestID = c.RequestID()
	if authenticated {
		ac.WithPrincipal(principal)
	}

	data, err := parseParameters(r, mediaType, ac)
	if err != nil {
		return err
	}

	result, err := d.actions.Run(strings.ToLower(r.Method), name, ac, data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NewSuccessBody(name, result))
}

// NewSuccessBody wraps an action result. List results carry their length
// in count.
func NewSuccessBody(name string, result any) SuccessBody {
	body := SuccessBody{Status: StatusSuccess, ActionName: name, Result: result}
	if n, ok := listLen(result); ok {
		body.Count = &n
	}
	return body
}

func listLen(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return 0, false
	}
	return rv.Len(), true
}

func requestMediaType(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case contentTypeJSON, contentTypeMultipart:
		return mediaType, nil
	}
	return "", apperr.BadRequest("headers", "Headers are not set Content-type: application/json is required")
}

func parseParameters(r *http.Request, mediaType string, ac *action.Context) (map[string]any, error) {
	if mediaType == contentTypeJSON {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes))
		if err != nil {
			return nil, apperr.BadRequest("body", "Unable to read request body")
		}
		if len(bytes.TrimSpace(body)) > 0 {
			var data map[string]any
			if err := json.Unmarshal(body, &data); err != nil || data == nil {
				return nil, apperr.BadRequest("body", "Request body must be a JSON object")
			}
			return data, nil
		}
		return ValuesToMap(r.URL.Query()), nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, apperr.BadRequest("body", "Unable to parse multipart form")
	}
	if r.MultipartForm != nil {
		for field, files := range r.MultipartForm.File {
			ac.Files[field] = files
		}
	}
	return ValuesToMap(r.Form), nil
}

// ValuesToMap converts form or query values to action data: single
// values become strings, repeated values become lists.
func ValuesToMap(values url.Values) map[string]any {
	data := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
			data[k] = ""
		case 1:
			data[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			data[k] = list
		}
	}
	return data
}

// PrincipalFromContext returns the authenticated principal stored on ctx
// by the authentication middleware.
func PrincipalFromContext(ctx context.Context) (action.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey{}).(action.Principal)
	return p, ok && p.Authenticated
}

// ActionHandler serves fn as a JSON page outside the generic API route.
// The action context carries the request principal and id. Results use
// the success envelope and errors the error envelope.
func ActionHandler(name string, fn func(c *action.Context, r *http.Request) (any, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac := action.NewContext(logger.WithContextAttrs(r.Context(), slog.String("page", name)), name)
		ac.Type = "page"
		ac.RequestID, _ = r.Context().Value(RequestIDKey{}).(string)
		if p, ok := PrincipalFromContext(r.Context()); ok {
			ac.WithPrincipal(p)
		}

		result, err := fn(ac, r)
		if err != nil {
			code, body := ErrorResponse(err)
			writeJSON(w, code, body)
			return
		}
		writeJSON(w, http.StatusOK, NewSuccessBody(name, result))
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
