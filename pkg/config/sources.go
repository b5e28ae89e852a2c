package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of process environment variables read by Environ.
const EnvPrefix = "EMAPP_"

// Settings is the merged view of every settings source, before it is
// written to the registry.
type Settings map[string]any

// Source contributes values to a Settings map. Later sources override
// earlier ones.
type Source func(Settings) error

// Collect applies sources in order and returns the merged settings.
func Collect(sources ...Source) (Settings, error) {
	s := Settings{}
	for _, src := range sources {
		if src == nil {
			continue
		}
		if err := src(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Values adds fixed values, typically compiled-in defaults.
func Values(values map[string]any) Source {
	return func(s Settings) error {
		for k, v := range values {
			s[k] = v
		}
		return nil
	}
}

// YAMLFile reads a top-level mapping from a YAML file.
// A missing file is ignored when optional is true.
func YAMLFile(path string, optional bool) Source {
	return func(s Settings) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("%w: %s: %v", ErrSettingsFile, path, err)
		}
		return decodeYAML(s, path, data)
	}
}

// YAMLBytes reads a top-level mapping from YAML content.
func YAMLBytes(data []byte) Source {
	return func(s Settings) error {
		return decodeYAML(s, "<bytes>", data)
	}
}

func decodeYAML(s Settings, name string, data []byte) error {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSettingsFile, name, err)
	}
	for k, v := range values {
		s[k] = v
	}
	return nil
}

// DotEnv reads KEY=value pairs from .env files.
// Missing files are ignored.
func DotEnv(paths ...string) Source {
	return func(s Settings) error {
		for _, p := range paths {
			if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
				continue
			}
			values, err := godotenv.Read(p)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSettingsFile, p, err)
			}
			for k, v := range values {
				s[k] = v
			}
		}
		return nil
	}
}

// Environ reads process environment variables starting with prefix,
// with the prefix stripped: EMAPP_COMPANY_NAME sets COMPANY_NAME.
func Environ(prefix string) Source {
	return func(s Settings) error {
		for _, kv := range os.Environ() {
			key, value, ok := strings.Cut(kv, "=")
			if !ok || !strings.HasPrefix(key, prefix) {
				continue
			}
			if name := strings.TrimPrefix(key, prefix); name != "" {
				s[name] = value
			}
		}
		return nil
	}
}
