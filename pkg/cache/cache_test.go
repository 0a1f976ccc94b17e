package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты выполняются только при заданном TEST_REDIS_ADDR
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCache(client)
	require.NoError(t, c.Ping(context.Background()))
	return c
}

func TestRedisCache_SaveGetDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "test:cache:" + t.Name()

	type payload struct {
		Slot int `json:"slot"`
	}

	require.NoError(t, c.Save(ctx, key, payload{Slot: 45}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, key, &got))
	assert.Equal(t, 45, got.Slot)

	require.NoError(t, c.Delete(ctx, key))
	assert.ErrorIs(t, c.Get(ctx, key, &got), ErrMiss)
}

func TestRedisCache_Generation(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "test:cache:gen:" + t.Name()
	t.Cleanup(func() { _ = c.Delete(context.Background(), key) })

	gen, err := c.Generation(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, gen)

	bumped, err := c.BumpGeneration(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bumped)

	gen, err = c.Generation(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestVersionedKey(t *testing.T) {
	assert.Equal(t, "scheduling:settings:v3", VersionedKey("scheduling:settings", 3))
}
