package core

import (
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/apperr"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/country"
	"github.com/emapp/emapp/pkg/markup"
	"github.com/emapp/emapp/pkg/utility"
)

const (
	defaultTitle      = "Title not given"
	defaultShortTitle = "Short title not given"

	// ActiveClass is returned by is_active_url for the current page.
	ActiveClass = "active"
)

// ColorCodes is the palette generate_random_color_code picks from.
var ColorCodes = []string{
	"#e91e63",
	"#9c27b0",
	"#3f51b5",
	"#2196f3",
	"#03a9f4",
	"#00bcd4",
	"#795548",
	"#4caf50",
}

type namedUtility struct {
	fn   utility.Func
	name string
}

func (e *Extension) utilities() []namedUtility {
	return []namedUtility{
		{name: "core_convert_to_bool", fn: convertToBool},
		{name: "get_application_title", fn: e.applicationTitle},
		{name: "get_application_short_title", fn: e.applicationShortTitle},
		{name: "get_application_terms_of_use_line1", fn: e.termsOfUseLine1},
		{name: "get_application_terms_of_use_copyrights", fn: e.termsOfUseCopyrights},
		{name: "generate_random_color_code", fn: randomColorCode},
		{name: "get_country_name", fn: countryName},
		{name: "get_all_countries_select_option", fn: countryOptions},
		{name: "prepare_relative_url_query_string", fn: relativeURLQueryString},
		{name: "prepare_error_data", fn: prepareErrorData},
		{name: "convert_request_data_to_dict", fn: requestDataToMap},
		{name: "list_slice", fn: listSlice},
		{name: "is_active_url", fn: isActiveURL},
		{name: "sanitize_html", fn: sanitizeHTML},
		{name: "strip_html", fn: stripHTML},
		{name: "render_markdown", fn: renderMarkdown},
	}
}

// ToBool reports whether v is true, "true" or "1" (case-insensitive).
// Everything else, including nil, is false.
func ToBool(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "1"
	}
	n, ok := utility.ToInt(v)
	return ok && n == 1
}

func convertToBool(args ...any) (any, error) {
	if len(args) == 0 {
		return false, nil
	}
	return ToBool(args[0]), nil
}

func (e *Extension) applicationTitle(...any) (any, error) {
	return e.cfg.String(config.ApplicationTitle, defaultTitle), nil
}

func (e *Extension) applicationShortTitle(...any) (any, error) {
	return e.cfg.String(config.ApplicationShortTitle, defaultShortTitle), nil
}

func (e *Extension) termsOfUseLine1(...any) (any, error) {
	return e.cfg.String(config.ApplicationTermsLine1, "") + e.cfg.String(config.CompanyName, ""), nil
}

func (e *Extension) termsOfUseCopyrights(...any) (any, error) {
	return e.cfg.String(config.ApplicationTermsCopyright, ""), nil
}

func randomColorCode(...any) (any, error) {
	return ColorCodes[rand.IntN(len(ColorCodes))], nil
}

func countryName(args ...any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return "", nil
	}
	code, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return country.Name(code), nil
}

func countryOptions(...any) (any, error) {
	return country.Options(), nil
}

// relativeURLQueryString returns the request path with its query string,
// minus the given parameter, ready for a new parameter to be appended:
// "/search?q=go&" or "/search?".
func relativeURLQueryString(args ...any) (any, error) {
	u, err := urlArg(args, 0)
	if err != nil {
		return nil, err
	}
	param, err := utility.Arg[string](args, 1)
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		if key, _, _ := strings.Cut(pair, "="); key == param {
			continue
		}
		kept = append(kept, pair)
	}
	if len(kept) == 0 {
		return u.Path + "?", nil
	}
	return u.Path + "?" + strings.Join(kept, "&") + "&", nil
}

// prepareErrorData wraps every message of an error payload in a list.
// An *apperr.Error is unwrapped to its payload first.
func prepareErrorData(args ...any) (any, error) {
	if len(args) == 0 || args[0] == nil {
		return nil, nil
	}

	var payload map[string]any
	switch v := args[0].(type) {
	case map[string]any:
		payload = v
	case error:
		ae, ok := apperr.As(v)
		if !ok {
			return map[string]any{"error": []any{v.Error()}}, nil
		}
		payload = ae.Payload
	default:
		return v, nil
	}

	if len(payload) == 0 {
		return payload, nil
	}
	out := make(map[string]any, len(payload))
	for k, msg := range payload {
		out[k] = []any{msg}
	}
	return out, nil
}

func requestDataToMap(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, apperr.Parameter("args", "missing argument 0")
	}
	switch v := args[0].(type) {
	case url.Values:
		return internal.ValuesToMap(v), nil
	case map[string][]string:
		return internal.ValuesToMap(url.Values(v)), nil
	case *http.Request:
		if err := v.ParseForm(); err != nil {
			return nil, apperr.BadRequest("request", "Request data could not be parsed")
		}
		return internal.ValuesToMap(v.Form), nil
	}
	return nil, apperr.Parameter("args", "argument 0 must be request data")
}

// listSlice returns ls[from:to] with negative indices counted from the
// end and out-of-range bounds clamped.
func listSlice(args ...any) (any, error) {
	if len(args) == 0 {
		return nil, apperr.Parameter("args", "missing argument 0")
	}
	from, err := utility.IntArg(args, 1)
	if err != nil {
		return nil, err
	}
	to, err := utility.IntArg(args, 2)
	if err != nil {
		return nil, err
	}

	switch ls := args[0].(type) {
	case []any:
		lo, hi := sliceBounds(len(ls), from, to)
		return ls[lo:hi], nil
	case []string:
		lo, hi := sliceBounds(len(ls), from, to)
		return ls[lo:hi], nil
	}
	return nil, apperr.Parameter("args", "argument 0 must be a list")
}

func sliceBounds(n, from, to int) (int, int) {
	clamp := func(i int) int {
		if i < 0 {
			i += n
		}
		return min(max(i, 0), n)
	}
	lo, hi := clamp(from), clamp(to)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func isActiveURL(args ...any) (any, error) {
	pattern, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	u, err := urlArg(args, 1)
	if err != nil {
		return "", nil
	}
	if u.Path == pattern {
		return ActiveClass, nil
	}
	return "", nil
}

func sanitizeHTML(args ...any) (any, error) {
	s, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return markup.SanitizeHTML(s), nil
}

func stripHTML(args ...any) (any, error) {
	s, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return markup.StripHTML(s), nil
}

func renderMarkdown(args ...any) (any, error) {
	s, err := utility.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	html, err := markup.RenderMarkdown(s)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternalServerError, err, map[string]any{"markdown": "Markdown could not be rendered"})
	}
	return html, nil
}

// urlArg accepts a request, a URL or a raw request URI.
func urlArg(args []any, i int) (*url.URL, error) {
	if i >= len(args) {
		return nil, apperr.Parameter("args", "missing request argument")
	}
	switch v := args[i].(type) {
	case *http.Request:
		if v == nil || v.URL == nil {
			return nil, apperr.Parameter("args", "request has no URL")
		}
		return v.URL, nil
	case *url.URL:
		if v == nil {
			return nil, apperr.Parameter("args", "nil URL")
		}
		return v, nil
	case string:
		u, err := url.Parse(v)
		if err != nil {
			return nil, apperr.Parameter("args", "invalid URL: "+v)
		}
		return u, nil
	}
	return nil, apperr.Parameter("args", "argument must be a request or URL")
}
