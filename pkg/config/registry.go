package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Registry is a write-once key-value store for application settings.
// A key can be set exactly once; nothing can be removed.
type Registry struct {
	values map[string]any
	mu     sync.RWMutex
}

// New creates an empty config registry.
func New() *Registry {
	return &Registry{values: make(map[string]any)}
}

// Set stores value under key. Setting an existing key returns ErrKeyExists
// and keeps the first value.
func (r *Registry) Set(key string, value any) error {
	if key == "" {
		return ErrInvalidKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[key]; ok {
		return fmt.Errorf("%w: %s", ErrKeyExists, key)
	}
	r.values[key] = value
	return nil
}

// Load writes every public upper-case setting of s exactly once.
// Other names are skipped. Loading a key that is already set fails.
func (r *Registry) Load(s Settings) error {
	for _, key := range slices.Sorted(maps.Keys(s)) {
		if !IsSettingName(key) {
			continue
		}
		if err := r.Set(key, s[key]); err != nil {
			return err
		}
	}
	return nil
}

// Delete always fails with ErrImmutable.
func (r *Registry) Delete(key string) error {
	return fmt.Errorf("%w: %s", ErrImmutable, key)
}

// Pop always fails with ErrImmutable.
func (r *Registry) Pop(key string) (any, error) {
	return nil, fmt.Errorf("%w: %s", ErrImmutable, key)
}

// Get returns the raw value stored under key.
func (r *Registry) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is set.
func (r *Registry) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// String returns the value under key formatted as a string, or def.
func (r *Registry) String(key, def string) string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value under key as an int, or def when it is missing
// or not numeric.
func (r *Registry) Int(key string, def int) int {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// Duration returns the value under key as a duration, or def. Strings use
// time.ParseDuration syntax and bare numbers are seconds.
func (r *Registry) Duration(key string, def time.Duration) time.Duration {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	switch d := v.(type) {
	case time.Duration:
		return d
	case string:
		if parsed, err := time.ParseDuration(strings.TrimSpace(d)); err == nil {
			return parsed
		}
	}
	if n := r.Int(key, -1); n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

// Bool returns the value under key as a bool, or def.
// Strings are parsed with strconv.ParseBool.
func (r *Registry) Bool(key string, def bool) bool {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	}
	return def
}

// Strings returns the value under key as a string list, or def.
// A string value is split on commas.
func (r *Registry) Strings(key string, def []string) []string {
	v, ok := r.Get(key)
	if !ok {
		return def
	}
	switch l := v.(type) {
	case []string:
		return slices.Clone(l)
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(l, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return def
}

// Keys returns every key in lexicographic order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.values))
}

// Len returns the number of keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Snapshot returns a copy of every setting.
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.values)
}

// IsSettingName reports whether key is a public upper-case setting name,
// e.g. APPLICATION_TITLE. Names starting with an underscore are private.
func IsSettingName(key string) bool {
	if key == "" || key[0] == '_' {
		return false
	}
	hasLetter := false
	for _, c := range key {
		switch {
		case c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return hasLetter
}
