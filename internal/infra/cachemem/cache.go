package cachemem

import (
	"context"
	"sync"
	"time"

	"docvault/internal/domain"
)

// Cache is an in-process validation report cache for deployments without
// Redis. Entries expire by TTL and are evicted lazily on read.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     domain.ValidationReport
	expiresAt time.Time
	hasExpiry bool
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.ValidationReport, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.hasExpiry && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	value := entry.value
	return &value, true, nil
}

func (c *Cache) Put(ctx context.Context, key string, value domain.ValidationReport, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
		entry.hasExpiry = true
	}
	c.entries[key] = entry
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}
