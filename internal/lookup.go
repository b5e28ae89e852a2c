package internal

import "strings"

// Source reads one candidate value, such as a credential or a request id,
// from the request. An empty result is a miss.
type Source func(Context) string

// Lookup is an ordered chain of sources.
type Lookup []Source

// Find returns the first non-blank value produced by the chain.
func (l Lookup) Find(c Context) (string, bool) {
	for _, src := range l {
		if src == nil {
			continue
		}
		if v := strings.TrimSpace(src(c)); v != "" {
			return v, true
		}
	}
	return "", false
}

// HeaderLookup builds a chain reading the given headers in order.
func HeaderLookup(names ...string) Lookup {
	l := make(Lookup, 0, len(names))
	for _, n := range names {
		l = append(l, FromHeader(n))
	}
	return l
}

// FromHeader reads a request header.
func FromHeader(name string) Source {
	return func(c Context) string { return c.Header(name) }
}

// FromQuery reads a query parameter.
func FromQuery(name string) Source {
	return func(c Context) string { return c.Query(name) }
}

// FromAuthorization reads the credential of an Authorization header using
// scheme, e.g. "Authorization: Api-Key <key>". The scheme is matched
// case-insensitively.
func FromAuthorization(scheme string) Source {
	return func(c Context) string {
		got, cred, ok := strings.Cut(strings.TrimSpace(c.Header("Authorization")), " ")
		if !ok || !strings.EqualFold(got, scheme) {
			return ""
		}
		return cred
	}
}
