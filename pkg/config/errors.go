package config

import "errors"

var (
	// ErrKeyExists is returned when a key is written a second time.
	ErrKeyExists = errors.New("config: key already set")

	// ErrImmutable is returned by every removal operation.
	ErrImmutable = errors.New("config: keys cannot be removed")

	// ErrInvalidKey is returned by Set for an empty key.
	ErrInvalidKey = errors.New("config: invalid setting name")

	// ErrSettingsFile is returned when a settings file cannot be read or parsed.
	ErrSettingsFile = errors.New("config: invalid settings file")
)
