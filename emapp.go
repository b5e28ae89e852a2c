package emapp

import (
	"github.com/emapp/emapp/internal"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/plugin"
)

type (
	// App is a bootstrapped application serving its installed extensions.
	App = internal.App

	// Bootstrap runs the configuration, discovery and registration phases.
	Bootstrap = internal.Bootstrap

	Context      = internal.Context
	HandlerFunc  = internal.HandlerFunc
	Middleware   = internal.Middleware
	ErrorHandler = internal.ErrorHandler

	Option       = internal.Option
	RunOption    = internal.RunOption
	HealthOption = internal.HealthOption

	// ErrorBody is the JSON envelope of a failed request.
	ErrorBody = internal.ErrorBody

	// SuccessBody is the JSON envelope of a successful API action.
	SuccessBody = internal.SuccessBody

	ContextExtractor = logger.ContextExtractor
	EntryPoint       = plugin.EntryPoint
	Registries       = plugin.Registries
)

// ExtensionsCheck names the built-in readiness check.
const ExtensionsCheck = internal.ExtensionsCheck

// Construction.
var (
	// New collects the settings, registers the installed extensions and
	// mounts their routes.
	//
	//	app, err := emapp.New(
	//	    emapp.WithLogger(log),
	//	    emapp.WithSettings(config.YAMLFile("emapp.yaml", true)),
	//	    emapp.WithExtensions(core.EntryPoint(), hrmgmt.EntryPoint()),
	//	)
	//	if err != nil {
	//	    return err
	//	}
	//	return app.Run("")
	New = internal.New

	// NewBootstrap creates the startup orchestrator New runs.
	NewBootstrap = internal.NewBootstrap

	// NewContext wraps a request for calling handlers outside the router.
	NewContext = internal.NewContext
)

// Application options.
var (
	WithLogger          = internal.WithLogger
	WithSettings        = internal.WithSettings
	WithExtensions      = internal.WithExtensions
	WithInstalledApps   = internal.WithInstalledApps
	WithAnonymousAPI    = internal.WithAnonymousAPI
	WithMiddleware      = internal.WithMiddleware
	WithErrorHandler    = internal.WithErrorHandler
	WithNotFoundHandler = internal.WithNotFoundHandler
	WithShutdownHook    = internal.WithShutdownHook

	// WithHealthChecks mounts the probes.
	//
	//	emapp.WithHealthChecks(
	//	    emapp.WithReadinessCheck("redis", redis.Healthcheck(client)),
	//	)
	WithHealthChecks   = internal.WithHealthChecks
	WithLivenessPath   = internal.WithLivenessPath
	WithReadinessPath  = internal.WithReadinessPath
	WithReadinessCheck = internal.WithReadinessCheck
)

// Run options.
var (
	Logger          = internal.Logger
	ShutdownTimeout = internal.ShutdownTimeout
	ShutdownHook    = internal.ShutdownHook
	WithContext     = internal.WithContext
)

// Error envelopes.
var (
	ErrorResponse       = internal.ErrorResponse
	DefaultErrorHandler = internal.DefaultErrorHandler
)
