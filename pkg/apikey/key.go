package apikey

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emapp/emapp/pkg/action"
)

// Prefix is prepended to every issued plain-text key.
const Prefix = "emk_"

// Key is a stored API key. Only the hash of the secret is kept.
type Key struct {
	CreatedAt time.Time        `json:"created_at"`
	ID        string           `json:"id"`
	Hash      string           `json:"hash"`
	Principal action.Principal `json:"principal"`
}

// Store persists API keys by id and by secret hash.
type Store interface {
	Save(ctx context.Context, key Key) error
	FindByHash(ctx context.Context, hash string) (Key, error)
	Revoke(ctx context.Context, id string) error
}

// Hash returns the hex-encoded SHA-256 of a plain-text key.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Issue generates a new key for p, saves its hash and returns the plain
// text secret. The secret is not recoverable afterwards.
func Issue(ctx context.Context, store Store, p action.Principal) (string, Key, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", Key{}, fmt.Errorf("apikey: generate secret: %w", err)
	}
	plain := Prefix + base64.RawURLEncoding.EncodeToString(buf)

	p.Authenticated = true
	key := Key{
		ID:        uuid.NewString(),
		Hash:      Hash(plain),
		Principal: p,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Save(ctx, key); err != nil {
		return "", Key{}, err
	}
	return plain, key, nil
}

// Resolve returns the principal that owns the plain-text key.
func Resolve(ctx context.Context, store Store, plain string) (action.Principal, error) {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return action.Principal{}, ErrEmptyKey
	}
	key, err := store.FindByHash(ctx, Hash(plain))
	if err != nil {
		return action.Principal{}, err
	}
	p := key.Principal
	p.Authenticated = true
	return p, nil
}
