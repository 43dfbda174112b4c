package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/cache"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido, se omiten pruebas de Redis")
	}
	client, err := cache.NewClient(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	if err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Del(context.Background(), cache.DefaultSummaryKey).Err()
		_ = client.Close()
	})
	return client
}

func TestAlertSummaryCache_CacheAside(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	c := cache.NewAlertSummaryCache(client, time.Minute)
	require.NoError(t, c.Invalidate(ctx))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "sin entrada es un fallo de caché, no un error")

	want := repository.AlertCounts{Total: 3, Active: 2, Resolved: 1, ByType: map[string]int{"LOW_STOCK": 2}}
	require.NoError(t, c.Set(ctx, want))

	got, err = c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	ttl, err := client.TTL(ctx, cache.DefaultSummaryKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx))
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAlertSummaryCache_EntradaCorrupta(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	c := cache.NewAlertSummaryCache(client, time.Minute)

	require.NoError(t, client.Set(ctx, cache.DefaultSummaryKey, "{no-json", time.Minute).Err())
	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := client.Exists(ctx, cache.DefaultSummaryKey).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestAlertSummaryCache_ErrorDeConexion(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	c := cache.NewAlertSummaryCache(client, 0)

	_, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), repository.AlertCounts{}))
}
