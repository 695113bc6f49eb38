package cache

import (
	"sync"
	"time"

	"github.com/shoplens/backend/internal/domain"
)

// cacheItem is a single memoized identification with its expiration.
type cacheItem struct {
	ident      domain.ProductIdentification
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory identification cache with TTL
// support, keyed by image digest. A re-sent photo resolves here instead of
// triggering another round of vision calls.
type MemoryCache struct {
	data  map[string]cacheItem
	ttl   time.Duration
	mutex sync.RWMutex
}

// NewMemoryCache creates an identification cache holding entries for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]cacheItem),
		ttl:  ttl,
	}

	// Cleanup goroutine removes expired entries every 10 minutes.
	go c.cleanupExpired()

	return c
}

// Get retrieves a cached identification by image digest.
func (c *MemoryCache) Get(key string) (domain.ProductIdentification, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return domain.ProductIdentification{}, false
	}
	return item.ident, true
}

// Set stores an identification under the given image digest.
func (c *MemoryCache) Set(key string, ident domain.ProductIdentification) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		ident:      ident,
		expiration: time.Now().Add(c.ttl),
	}
}

// Size returns the current number of items in the cache.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
