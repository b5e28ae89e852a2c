// Package config provides the write-once settings registry and the
// settings sources it is populated from.
//
// Settings are merged from several sources, later ones overriding earlier
// ones, and then written to the registry in a single pass:
//
//	settings, err := config.Collect(
//	    config.Values(config.Defaults()),
//	    config.YAMLFile("emapp.yaml", true),
//	    config.DotEnv(".env"),
//	    config.Environ(config.EnvPrefix),
//	)
//	cfg := config.New()
//	err = cfg.Load(settings)
//
// Only public upper-case names such as APPLICATION_TITLE reach the registry.
// Each key can be written once; a second Set or Load of the same key returns
// [ErrKeyExists], and [Registry.Delete] and [Registry.Pop] always return
// [ErrImmutable].
package config
