package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/anime-stream/internal/config"
)

type testStruct struct {
	Name string
	Days int
}

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	value := testStruct{Name: "premium", Days: 30}
	require.NoError(t, cache.Set("access:current:uid", value, time.Minute))

	var got testStruct
	found, err := cache.Get("access:current:uid", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, value, got)
}

func TestGet_Missing(t *testing.T) {
	cache := setupTestCache(t)

	var got testStruct
	found, err := cache.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("key", testStruct{Name: "x"}, time.Minute))
	require.NoError(t, cache.Invalidate("key"))

	var got testStruct
	found, err := cache.Get("key", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
