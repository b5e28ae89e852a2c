package apikey_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emapp/emapp/pkg/action"
	"github.com/emapp/emapp/pkg/apikey"
	"github.com/emapp/emapp/pkg/redis"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("EMAPP_TEST_REDIS_URL")
	if url == "" {
		t.Skip("EMAPP_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url, redis.WithRetry(1, 100*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := apikey.NewRedisStore(client, "emapp:test:apikey:")

	secret, key, err := apikey.Issue(ctx, store, action.Principal{ID: "E9", Role: "admin", IsSuperuser: true})
	require.NoError(t, err)

	p, err := apikey.Resolve(ctx, store, secret)
	require.NoError(t, err)
	assert.Equal(t, "E9", p.ID)
	assert.True(t, p.IsSuperuser)

	require.NoError(t, store.Revoke(ctx, key.ID))
	_, err = apikey.Resolve(ctx, store, secret)
	require.ErrorIs(t, err, apikey.ErrKeyNotFound)
	require.ErrorIs(t, store.Revoke(ctx, key.ID), apikey.ErrKeyNotFound)
}
