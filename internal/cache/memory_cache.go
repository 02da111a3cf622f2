package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the in-memory table
const DefaultMaxEntries = 100

type memoryCache struct {
	ttl        time.Duration
	maxEntries int
	clock      func() time.Time

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a bounded in-process TTL cache
func NewMemoryCache(ttl time.Duration, maxEntries int) Cache {
	return newMemoryCache(ttl, maxEntries, time.Now)
}

func newMemoryCache(ttl time.Duration, maxEntries int, clock func() time.Time) *memoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &memoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
		entries:    make(map[string]memoryEntry),
	}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !entry.expiresAt.After(c.clock()) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	now := c.clock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = memoryEntry{data: data, expiresAt: now.Add(c.ttl)}
	return nil
}

func (c *memoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// evictLocked drops expired entries, or the soonest-expiring one if none expired
func (c *memoryCache) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for k, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.expiresAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
