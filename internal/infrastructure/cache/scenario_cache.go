package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryScenarioCache is a TTL cache for resolved scenario code sets. It is
// safe for concurrent use and expires entries lazily on read.
type InMemoryScenarioCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	codes     []string
	expiresAt time.Time
}

// NewInMemoryScenarioCache creates a cache with the given TTL. A zero TTL
// disables expiry.
func NewInMemoryScenarioCache(ttl time.Duration) *InMemoryScenarioCache {
	return &InMemoryScenarioCache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached codes for the key, if present and not expired
func (c *InMemoryScenarioCache) Get(_ context.Context, key string) ([]string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	out := make([]string, len(e.codes))
	copy(out, e.codes)
	return out, true
}

// Set stores the codes under the key
func (c *InMemoryScenarioCache) Set(_ context.Context, key string, codes []string) {
	stored := make([]string, len(codes))
	copy(stored, codes)

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry{codes: stored, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Len returns the number of entries currently held, expired or not
func (c *InMemoryScenarioCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
