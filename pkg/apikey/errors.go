package apikey

import "errors"

var (
	ErrKeyNotFound   = errors.New("apikey: key not found")
	ErrEmptyKey      = errors.New("apikey: empty key")
	ErrInvalidRecord = errors.New("apikey: invalid key record")
	ErrStoreFailed   = errors.New("apikey: store operation failed")
)
