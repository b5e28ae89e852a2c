package apikey

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by RedisStore.
const DefaultRedisPrefix = "emapp:apikey:"

// RedisStore keeps keys in Redis as JSON records indexed by hash,
// with a secondary id -> hash entry for revocation.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store on top of an open client.
// An empty prefix selects DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) hashKey(hash string) string { return s.prefix + "hash:" + hash }
func (s *RedisStore) idKey(id string) string     { return s.prefix + "id:" + id }

func (s *RedisStore) Save(ctx context.Context, key Key) error {
	if key.ID == "" || key.Hash == "" {
		return ErrInvalidRecord
	}
	data, err := json.Marshal(key)
	if err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.hashKey(key.Hash), data, 0)
		pipe.Set(ctx, s.idKey(key.ID), key.Hash, 0)
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) FindByHash(ctx context.Context, hash string) (Key, error) {
	data, err := s.client.Get(ctx, s.hashKey(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Key{}, ErrKeyNotFound
	}
	if err != nil {
		return Key{}, errors.Join(ErrStoreFailed, err)
	}

	var key Key
	if err := json.Unmarshal(data, &key); err != nil {
		return Key{}, errors.Join(ErrInvalidRecord, err)
	}
	return key, nil
}

func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	hash, err := s.client.Get(ctx, s.idKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrKeyNotFound
	}
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := s.client.Del(ctx, s.idKey(id), s.hashKey(hash)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
