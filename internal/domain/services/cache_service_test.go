package services

import (
	"context"
	"testing"
	"time"

	"logistics-http-service/internal/infrastructure/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseCache(t *testing.T, cache InterfaceCacheService) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "resp:customers:a", []byte(`[1]`)))
	require.NoError(t, cache.Set(ctx, "resp:customers:b", []byte(`[2]`)))
	require.NoError(t, cache.Set(ctx, "resp:orders:a", []byte(`[3]`)))

	val, ok, err := cache.Get(ctx, "resp:customers:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[1]`), val)

	require.NoError(t, cache.DeletePrefix(ctx, "resp:customers:"))

	_, ok, err = cache.Get(ctx, "resp:customers:b")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Get(ctx, "resp:orders:a")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCacheService(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := NewRedisCacheService(client, time.Minute)
	exerciseCache(t, cache)

	mr.FastForward(2 * time.Minute)
	_, ok, err := cache.Get(context.Background(), "resp:orders:a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheService(t *testing.T) {
	exerciseCache(t, NewMemoryCacheService(16, time.Minute))
}

func TestNewCacheServiceSelectsBackend(t *testing.T) {
	cache, err := NewCacheService(&config.Config{CacheBackend: "none"}, nil)
	require.NoError(t, err)
	assert.False(t, cache.Enabled())

	cache, err = NewCacheService(&config.Config{CacheBackend: "memory", CacheTTL: time.Second}, nil)
	require.NoError(t, err)
	assert.True(t, cache.Enabled())

	_, err = NewCacheService(&config.Config{CacheBackend: "redis"}, nil)
	assert.Error(t, err)
}
