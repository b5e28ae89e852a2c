package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler reports healthy for as long as the process serves.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on each request.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, runChecks(r.Context(), checks, cfg))
	}
}

func respond(w http.ResponseWriter, r *http.Request, resp *Response) {
	h := w.Header()
	h.Set("Cache-Control", "no-store")

	if plainTextOnly(r.Header.Get("Accept")) {
		h.Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(resp.httpStatus())
		_, _ = w.Write([]byte(resp.Status))
		return
	}

	h.Set("Content-Type", "application/json")
	w.WriteHeader(resp.httpStatus())
	_ = json.NewEncoder(w).Encode(resp)
}

// plainTextOnly reports whether every media range in accept is text/plain.
func plainTextOnly(accept string) bool {
	if accept == "" {
		return false
	}
	for part := range strings.SplitSeq(accept, ",") {
		media, _, _ := strings.Cut(part, ";")
		if !strings.EqualFold(strings.TrimSpace(media), "text/plain") {
			return false
		}
	}
	return true
}
