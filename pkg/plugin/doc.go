// Package plugin defines the contracts extensions implement to register
// their behavior, and the fixed sequences that call them.
//
// An extension embeds [Base] and overrides the hooks it needs:
//
//	type Extension struct{ plugin.Base }
//
//	func (Extension) AppAPIActions(a *action.Registry) error {
//	    return a.Register("ping", ping, "get")
//	}
//
// Extensions are published as [EntryPoint] values in a [Catalog]. At startup
// only the entry points named in INSTALLED_APPS are built, and each one runs
// [RunCoreSequence] and then [RunRouteSequence] against the shared
// [Registries]. Later extensions overwrite earlier registrations with the
// same key.
package plugin
