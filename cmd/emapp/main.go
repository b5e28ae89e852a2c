// Command emapp serves the EMApp API and pages with the bundled
// extensions.
//
// Settings come from the compiled-in defaults, emapp.yaml, .env and
// EMAPP_-prefixed environment variables, later sources winning. API keys
// are kept in Redis when REDIS_URL is set and in memory otherwise.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/emapp/emapp"
	"github.com/emapp/emapp/extensions/core"
	"github.com/emapp/emapp/extensions/hrmgmt"
	"github.com/emapp/emapp/extensions/projectmgmt"
	"github.com/emapp/emapp/middlewares"
	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apikey"
	"github.com/emapp/emapp/pkg/config"
	"github.com/emapp/emapp/pkg/logger"
	"github.com/emapp/emapp/pkg/redis"
)

func main() {
	configFile := flag.String("config", "emapp.yaml", "path of the optional YAML settings file")
	adminEmail := flag.String("admin-key", "", "issue a superuser API key for this email at startup")
	flag.Parse()

	if err := run(*configFile, *adminEmail); err != nil {
		slog.Error("application error", logger.Error(err))
		os.Exit(1)
	}
}

func run(configFile, adminEmail string) error {
	ctx := context.Background()

	sources := []config.Source{
		config.YAMLFile(configFile, true),
		config.DotEnv(".env"),
		config.Environ(config.EnvPrefix),
	}
	settings, err := config.Collect(append([]config.Source{config.Values(config.Defaults())}, sources...)...)
	if err != nil {
		return err
	}
	cfg := config.New()
	if err := cfg.Load(settings); err != nil {
		return err
	}

	log := logger.NewWithSentry(logger.SentryConfig{
		DSN:         cfg.String(config.SentryDSN, ""),
		Environment: cfg.String(config.Environment, "development"),
		Level:       logger.ParseLevel(cfg.String(config.LogLevel, "info")),
		MinLevel:    slog.LevelWarn,
	}, middlewares.RequestIDExtractor())

	opts := []emapp.Option{
		emapp.WithLogger(log),
		emapp.WithSettings(sources...),
		emapp.WithExtensions(
			core.EntryPoint(),
			hrmgmt.EntryPoint(),
			projectmgmt.EntryPoint(),
		),
	}

	var keys apikey.Store = apikey.NewMemoryStore()
	checks := []emapp.HealthOption{}
	if url := cfg.String(config.RedisURL, ""); url != "" {
		client, err := redis.Open(ctx, url, redis.WithLogger(log))
		if err != nil {
			return err
		}
		keys = apikey.NewRedisStore(client, apikey.DefaultRedisPrefix)
		checks = append(checks, emapp.WithReadinessCheck("redis", redis.Healthcheck(client)))
		opts = append(opts, emapp.WithShutdownHook(redis.Shutdown(client)))
		log.Info("api keys stored in redis")
	}

	opts = append(opts,
		emapp.WithHealthChecks(checks...),
		emapp.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.APIKey(keys),
		),
	)

	app, err := emapp.New(opts...)
	if err != nil {
		return err
	}

	if adminEmail != "" {
		plain, key, err := apikey.Issue(ctx, keys, action.Principal{
			ID:          adminEmail,
			Email:       adminEmail,
			Role:        "admin",
			IsSuperuser: true,
		})
		if err != nil {
			return err
		}
		log.Info("issued superuser api key", slog.String("key_id", key.ID), slog.String("email", adminEmail))
		fmt.Fprintln(os.Stdout, plain)
	}

	return app.Run("", emapp.ShutdownTimeout(10*time.Second))
}
