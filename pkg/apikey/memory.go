package apikey

import (
	"context"
	"sync"
)

// MemoryStore keeps keys in process memory.
type MemoryStore struct {
	byHash map[string]Key
	byID   map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byHash: make(map[string]Key),
		byID:   make(map[string]string),
	}
}

func (s *MemoryStore) Save(_ context.Context, key Key) error {
	if key.ID == "" || key.Hash == "" {
		return ErrInvalidRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byID[key.ID]; ok {
		delete(s.byHash, old)
	}
	s.byHash[key.Hash] = key
	s.byID[key.ID] = key.Hash
	return nil
}

func (s *MemoryStore) FindByHash(_ context.Context, hash string) (Key, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.byHash[hash]
	if !ok {
		return Key{}, ErrKeyNotFound
	}
	return key, nil
}

func (s *MemoryStore) Revoke(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.byID[id]
	if !ok {
		return ErrKeyNotFound
	}
	delete(s.byID, id)
	delete(s.byHash, hash)
	return nil
}
