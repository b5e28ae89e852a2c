package internal

import (
	"log/slog"
	"strings"

	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/plugin"
)

// Bootstrap runs the startup phases: configuration, extension discovery
// and extension registration. It runs once, before any request is served.
type Bootstrap struct {
	registries *plugin.Registries
	catalog    *plugin.Catalog
	logger     *slog.Logger
	installed  []string
	loaded     []string
}

// NewBootstrap creates an orchestrator over regs. When installed is nil
// the INSTALLED_APPS setting selects the extensions.
func NewBootstrap(regs *plugin.Registries, catalog *plugin.Catalog, installed []string) *Bootstrap {
	if catalog == nil {
		catalog = plugin.NewCatalog()
	}
	log := regs.Logger
	if log == nil {
		log = logger.NewNope()
	}
	return &Bootstrap{
		registries: regs,
		catalog:    catalog,
		logger:     log.With(slog.String("component", "bootstrap")),
		installed:  installed,
	}
}

// Setup runs every phase in order. Any error aborts startup.
func (b *Bootstrap) Setup(settings config.Settings) error {
	if err := b.loadConfig(settings); err != nil {
		return err
	}
	b.displayAppName()
	return b.registerExtensions()
}

// Loaded returns the names of the registered extensions in order.
func (b *Bootstrap) Loaded() []string {
	return append([]string(nil), b.loaded...)
}

func (b *Bootstrap) loadConfig(settings config.Settings) error {
	b.logger.Info("registering configuration")
	if err := b.registries.Config.Load(settings); err != nil {
		return err
	}
	b.logger.Info("configuration registered successfully", slog.Int("keys", b.registries.Config.Len()))
	return nil
}

func (b *Bootstrap) displayAppName() {
	cfg := b.registries.Config
	name := cfg.String(config.ApplicationShortTitle, "")
	if name == "" {
		name = cfg.String(config.ApplicationTitle, "")
	}
	b.logger.Info("starting application",
		slog.String("app", strings.ToUpper(name)),
		slog.String("environment", cfg.String(config.Environment, "")),
	)
}

func (b *Bootstrap) registerExtensions() error {
	installed := b.installed
	if installed == nil {
		installed = b.registries.Config.Strings(config.InstalledApps, nil)
	}
	b.logger.Info("collecting registered extensions", slog.Any("installed_apps", installed))

	for _, ep := range b.catalog.Installed(installed) {
		b.logger.Info("found extension entry point", slog.String("extension", ep.Name))
		ext, err := ep.Build(b.registries)
		if err != nil {
			return err
		}
		if err := b.registrationSequence(ep.Name, ext); err != nil {
			return err
		}
		b.loaded = append(b.loaded, ep.Name)
	}
	return nil
}

func (b *Bootstrap) registrationSequence(name string, ext any) error {
	if core, ok := ext.(plugin.Core); ok {
		if err := plugin.RunCoreSequence(name, core, b.registries); err != nil {
			return err
		}
	}
	if routes, ok := ext.(plugin.Routes); ok {
		if err := plugin.RunRouteSequence(name, routes, b.registries); err != nil {
			return err
		}
	}
	if _, ok := ext.(plugin.Templates); ok {
		b.logger.Debug("template interface is not invoked", slog.String("extension", name))
	}
	return nil
}
