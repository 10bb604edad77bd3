package cache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/cache"
)

func TestMemory_RoundTrip(t *testing.T) {
	store := cache.NewMemory()

	require.NoError(t, store.Set(entry("search:abc", "good-seo")))

	got, ok := store.Get("search:abc")
	require.True(t, ok)
	assert.Equal(t, "good-seo", got.Plugins[0].Plugin.Slug)
}

func TestMemory_MissAfterTTLStaleRetained(t *testing.T) {
	now := time.Now()
	clock := &now
	store := cache.NewMemory(cache.WithMemoryClock(func() time.Time { return *clock }))

	e := entry("search:abc", "good-seo")
	e.TTL = time.Hour
	require.NoError(t, store.Set(e))

	later := now.Add(2 * time.Hour)
	clock = &later

	_, ok := store.Get("search:abc")
	assert.False(t, ok)

	stale, ok := store.GetStale("search:abc")
	require.True(t, ok)
	assert.Equal(t, "good-seo", stale.Plugins[0].Plugin.Slug)
}

func TestMemory_LRUEviction(t *testing.T) {
	store := cache.NewMemory(cache.WithMaxEntries(2))

	require.NoError(t, store.Set(entry("search:1", "a")))
	require.NoError(t, store.Set(entry("search:2", "b")))

	// Touch 1 so 2 becomes the eviction candidate.
	_, ok := store.Get("search:1")
	require.True(t, ok)

	require.NoError(t, store.Set(entry("search:3", "c")))
	assert.Equal(t, 2, store.Len())

	_, ok = store.GetStale("search:2")
	assert.False(t, ok, "least recently used entry evicted")
	_, ok = store.GetStale("search:1")
	assert.True(t, ok)
}

func TestMemory_OversizedPayloadRejected(t *testing.T) {
	store := cache.NewMemory(cache.WithMemoryMaxEntryBytes(128))

	err := store.Set(entry("search:big", "one", "two", "three", "four"))
	assert.ErrorIs(t, err, cache.ErrTooLarge)

	_, ok := store.GetStale("search:big")
	assert.False(t, ok, "rejected payload is not stored at all")
}

func TestMemory_InvalidatePrefix(t *testing.T) {
	store := cache.NewMemory()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Set(entry(fmt.Sprintf("search:%d", i), "a")))
	}
	require.NoError(t, store.Set(entry("plugin:akismet", "akismet")))

	removed, err := store.InvalidatePrefix("search:")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 1, store.Len())
}

func TestMemory_OverwriteRefreshes(t *testing.T) {
	now := time.Now()
	clock := &now
	store := cache.NewMemory(cache.WithMemoryClock(func() time.Time { return *clock }))

	stale := entry("search:abc", "old")
	stale.TTL = time.Hour
	require.NoError(t, store.Set(stale))

	later := now.Add(2 * time.Hour)
	clock = &later

	fresh := entry("search:abc", "new")
	fresh.TTL = time.Hour
	require.NoError(t, store.Set(fresh))

	got, ok := store.Get("search:abc")
	require.True(t, ok)
	assert.Equal(t, "new", got.Plugins[0].Plugin.Slug)
	assert.Equal(t, 1, store.Len(), "overwrite does not duplicate the key")
}
