package plugin

import (
	"log/slog"
	"net/http"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/route"
	"github.com/emapp/emapp/pkg/schema"
	"github.com/emapp/emapp/pkg/utility"
	"github.com/emapp/emapp/pkg/validator"
)

// Registries is the application context handed to every extension.
// It is populated once at startup and read-only afterwards.
type Registries struct {
	Logger     *slog.Logger
	Config     *config.Registry
	Actions    *action.Registry
	Utilities  *utility.Registry
	Validators *validator.Registry
	Schemas    *schema.Registry
	Routes     *route.Routes
	Redirects  *route.Redirects

	// API is the generic JSON API dispatcher. Extensions mount it as a
	// route; registering the same route key again replaces it.
	API http.Handler
}

// NewRegistries creates empty registries sharing cfg and log.
// Nil arguments select an empty config and a no-op logger.
func NewRegistries(cfg *config.Registry, log *slog.Logger) *Registries {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = logger.NewNope()
	}
	validators := validator.NewRegistry(log)
	return &Registries{
		Logger:     log,
		Config:     cfg,
		Actions:    action.NewRegistry(log),
		Utilities:  utility.NewRegistry(log),
		Validators: validators,
		Schemas:    schema.NewRegistry(validators, log),
		Routes:     route.NewRoutes(log),
		Redirects:  route.NewRedirects(log),
	}
}

func (r *Registries) logger() *slog.Logger {
	if r.Logger == nil {
		return logger.NewNope()
	}
	return r.Logger
}
