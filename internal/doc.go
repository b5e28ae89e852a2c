// Package internal provides the core types and implementation of EMApp.
//
// This package is internal and should not be used directly. Import
// "github.com/emapp/emapp" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: bootstraps the registries, mounts the registered routes and runs the server
//   - Bootstrap: runs the configuration, discovery and registration phases
//   - Dispatcher: serves every registered API action behind one route
//   - Context: request/response access, principal and request ID
//   - HandlerFunc: handler signature returning an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: custom error handling for handler errors
//
// # Startup
//
// New collects settings from the compiled-in defaults and every source
// given with WithSettings, writes them to the write-once config registry,
// and registers each installed extension in catalog order:
//
//	app, err := internal.New(
//	    internal.WithSettings(config.YAMLFile("emapp.yaml", true)),
//	    internal.WithExtensions(core.EntryPoint(), hrmgmt.EntryPoint()),
//	)
//
// Any error during startup is returned and nothing is served.
//
// # API Envelope
//
// Successful actions are wrapped as
//
//	{"status": "success", "action_name": "show_employee", "result": {...}}
//
// with a "count" field for list results. Errors are reported as
//
//	{"status": "error", "error_type": "ValidationError", "msg": {"id": "..."}}
//
// and mapped to HTTP status codes by StatusForKind.
package internal
