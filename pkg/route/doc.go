// Package route implements the route and redirect registries that
// extensions use to contribute HTTP endpoints.
//
// Routes are keyed by a url key rather than by pattern. An extension
// replaces another extension's page by registering the same key:
//
//	routes.Register("profile", route.Route{
//	    Method:  http.MethodGet,
//	    Pattern: "/profile/",
//	    Handler: profileHandler,
//	    Name:    "profile",
//	})
//
// The dispatch table holds one entry per key. An overwritten key keeps the
// position of its first registration and uses the handler of the last one.
//
// Redirects are keyed by source URL and use one of two dispatcher types:
// "path" for chi patterns and "re_path" for regular expressions. Both
// answer with 302 Found.
package route
