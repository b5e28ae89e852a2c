// Package emapp is a plugin-registration framework for an employee
// management application.
//
// The application core knows nothing about employees or projects. At
// startup it loads settings into a write-once config registry, discovers
// the installed extensions and lets each one contribute data schemas, API
// actions, validators, utilities, URL routes and redirects to a set of
// registries. Requests are then served from those registries.
//
// # Quick Start
//
//	app, err := emapp.New(
//	    emapp.WithLogger(logger.New(slog.LevelInfo)),
//	    emapp.WithSettings(
//	        config.YAMLFile("emapp.yaml", true),
//	        config.DotEnv(".env"),
//	        config.Environ(config.EnvPrefix),
//	    ),
//	    emapp.WithExtensions(
//	        core.EntryPoint(),
//	        hrmgmt.EntryPoint(),
//	        projectmgmt.EntryPoint(),
//	    ),
//	    emapp.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.APIKey(store),
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(""); err != nil {
//	    log.Fatal(err)
//	}
//
// # Extensions
//
// An extension is any value implementing [plugin.Core], [plugin.Routes] or
// both. Embed [plugin.Base] to get no-op defaults for every hook:
//
//	type Extension struct {
//	    plugin.Base
//	}
//
//	func (Extension) AppAPIActions(r *action.Registry) error {
//	    return r.Register("ping", ping, "get")
//	}
//
// Extensions are registered in catalog order, and only those named in the
// INSTALLED_APPS setting (or [WithInstalledApps]) take part. Within one
// extension the core hooks run as schema, API actions, validators,
// utilities and the custom hook; then the route hooks run as redirects,
// routes and the custom hook. Registering a name that already exists
// replaces the earlier entry and logs a warning.
//
// # API
//
// All actions are served by one route, registered by the core extension
// as APPLICATION_API_ENDPOINT + "{action_name}". The action is looked up
// by name and lower-cased request method, and its result is wrapped in a
// JSON envelope. See [SuccessBody] and [ErrorBody].
package emapp
