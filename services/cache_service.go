package services

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logical query groups. Every mutating operation declares which groups it
// invalidates; readers of an invalidated group refetch on their next access.
const (
	GroupOrders         = "orders"
	GroupActiveOrders   = "active-orders"
	GroupOrderStats     = "order-stats"
	GroupBulkListing    = "bulk-listing"
	GroupMenu           = "menu"
	GroupMenuCategories = "menu-categories"
	GroupOrderMetrics   = "order-metrics"
)

// CacheInterface coordinates read caching and invalidation across the
// console's views. Invalidation only marks groups stale; it never fetches.
type CacheInterface interface {
	// Resolve returns the cached value for (group, subkey) if it is fresh,
	// otherwise calls loader, caches the result and marks it fresh. A loader
	// failure leaves the entry stale so the next read retries.
	Resolve(group, subkey string, loader func() (interface{}, error)) (interface{}, error)

	// Invalidate marks every entry of the given groups stale.
	Invalidate(groups ...string)

	// IsStale reports whether (group, subkey) needs a refetch.
	IsStale(group, subkey string) bool
}

type cacheEntry struct {
	group string
	value interface{}
	fresh bool
}

// CacheService implements CacheInterface with an in-memory group registry.
type CacheService struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

var cacheServiceInstance CacheInterface

// InitCacheService initializes the cache coordinator
func InitCacheService() CacheInterface {
	cacheServiceInstance = NewCacheService()
	return cacheServiceInstance
}

// GetCacheService returns the initialized cache coordinator instance
func GetCacheService() CacheInterface {
	return cacheServiceInstance
}

// SetCacheService sets the cache coordinator instance (primarily for testing)
func SetCacheService(service CacheInterface) {
	cacheServiceInstance = service
}

// NewCacheService creates an empty cache coordinator
func NewCacheService() *CacheService {
	return &CacheService{entries: make(map[string]*cacheEntry)}
}

func cacheKey(group, subkey string) string {
	if subkey == "" {
		return group
	}
	return group + "/" + subkey
}

// Resolve serves from cache when fresh, loading otherwise
func (c *CacheService) Resolve(group, subkey string, loader func() (interface{}, error)) (interface{}, error) {
	key := cacheKey(group, subkey)

	c.mu.Lock()
	entry, exists := c.entries[key]
	if exists && entry.fresh {
		value := entry.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	// Load outside the lock; gateway calls can be slow. A concurrent reader
	// of the same stale key may load twice, which matches the refetch-on-read
	// model: both end at the same gateway truth.
	value, err := loader()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{group: group, value: value, fresh: true}
	c.mu.Unlock()
	return value, nil
}

// Invalidate marks all entries in the given groups stale
func (c *CacheService) Invalidate(groups ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, group := range groups {
		for _, entry := range c.entries {
			if entry.group == group {
				entry.fresh = false
			}
		}
	}
	logrus.WithField("groups", groups).Debug("Cache groups invalidated")
}

// IsStale reports whether the entry needs a refetch
func (c *CacheService) IsStale(group, subkey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[cacheKey(group, subkey)]
	return !exists || !entry.fresh
}
