package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countingLoader(value interface{}, calls *int) func() (interface{}, error) {
	return func() (interface{}, error) {
		*calls++
		return value, nil
	}
}

func TestResolveCachesUntilInvalidated(t *testing.T) {
	cache := NewCacheService()
	calls := 0

	first, err := cache.Resolve(GroupOrders, "all", countingLoader("window-1", &calls))
	assert.NoError(t, err)
	assert.Equal(t, "window-1", first)
	assert.Equal(t, 1, calls)

	// Fresh entry: loader is not called again
	second, err := cache.Resolve(GroupOrders, "all", countingLoader("window-2", &calls))
	assert.NoError(t, err)
	assert.Equal(t, "window-1", second)
	assert.Equal(t, 1, calls)

	cache.Invalidate(GroupOrders)
	assert.True(t, cache.IsStale(GroupOrders, "all"))

	third, err := cache.Resolve(GroupOrders, "all", countingLoader("window-2", &calls))
	assert.NoError(t, err)
	assert.Equal(t, "window-2", third)
	assert.Equal(t, 2, calls)
}

func TestInvalidateCoversWholeGroup(t *testing.T) {
	cache := NewCacheService()
	calls := 0

	_, err := cache.Resolve(GroupOrders, "all", countingLoader("all", &calls))
	assert.NoError(t, err)
	_, err = cache.Resolve(GroupOrders, "preparing", countingLoader("preparing", &calls))
	assert.NoError(t, err)
	_, err = cache.Resolve(GroupMenu, "", countingLoader("menu", &calls))
	assert.NoError(t, err)

	cache.Invalidate(GroupOrders)

	// Every subkey of the group goes stale; other groups stay fresh
	assert.True(t, cache.IsStale(GroupOrders, "all"))
	assert.True(t, cache.IsStale(GroupOrders, "preparing"))
	assert.False(t, cache.IsStale(GroupMenu, ""))
}

func TestInvalidateDoesNotFetch(t *testing.T) {
	cache := NewCacheService()
	calls := 0

	_, err := cache.Resolve(GroupOrderStats, "", countingLoader("stats", &calls))
	assert.NoError(t, err)

	cache.Invalidate(GroupOrderStats)
	cache.Invalidate(GroupOrderStats)

	// Staleness is only a marker; no refetch happens until the next read
	assert.Equal(t, 1, calls)
	assert.True(t, cache.IsStale(GroupOrderStats, ""))
}

func TestInvalidateUnknownGroupIsNoOp(t *testing.T) {
	cache := NewCacheService()
	calls := 0

	_, err := cache.Resolve(GroupMenu, "", countingLoader("menu", &calls))
	assert.NoError(t, err)

	cache.Invalidate("never-registered")
	assert.False(t, cache.IsStale(GroupMenu, ""))
}

func TestResolveLoaderFailureLeavesEntryStale(t *testing.T) {
	cache := NewCacheService()
	boom := errors.New("gateway down")

	_, err := cache.Resolve(GroupOrders, "all", func() (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, cache.IsStale(GroupOrders, "all"))

	// The next read retries the loader and recovers
	value, err := cache.Resolve(GroupOrders, "all", func() (interface{}, error) {
		return "recovered", nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.False(t, cache.IsStale(GroupOrders, "all"))
}

func TestIsStaleForUnknownEntry(t *testing.T) {
	cache := NewCacheService()
	assert.True(t, cache.IsStale(GroupOrderMetrics, "10"))
}
