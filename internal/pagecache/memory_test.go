package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "index:page=1", []byte("rendered page"), time.Minute))

	value, ok, err := cache.Get(ctx, "index:page=1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("rendered page"), value)
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache()

	_, ok, err := cache.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	now := time.Now()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "index:page=1", []byte("stale"), 20*time.Second))

	// Still inside the window.
	now = now.Add(19 * time.Second)
	_, ok, err := cache.Get(ctx, "index:page=1")
	assert.NoError(t, err)
	assert.True(t, ok)

	// Past the window.
	now = now.Add(2 * time.Second)
	_, ok, err = cache.Get(ctx, "index:page=1")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheClear(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "index:page=1", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "index:page=2", []byte("b"), time.Minute))

	require.NoError(t, cache.Clear(ctx))

	_, ok, _ := cache.Get(ctx, "index:page=1")
	assert.False(t, ok)
	_, ok, _ = cache.Get(ctx, "index:page=2")
	assert.False(t, ok)
}

func TestMemoryCacheCopiesValue(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	original := []byte("immutable")
	require.NoError(t, cache.Set(ctx, "k", original, time.Minute))
	original[0] = 'X'

	value, ok, err := cache.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("immutable"), value)
}
