package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// memoryEntry is a cached value with expiration.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// MemoryCache is an in-memory Cache for development and tests, and for
// single-instance deployments that run without Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.expired() {
		return nil, ErrCacheMiss
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	entry := &memoryEntry{value: stored}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	if entry, ok := c.entries[key]; ok && !entry.expired() {
		n, _ = strconv.ParseInt(string(entry.value), 10, 64)
	}
	n++

	entry := &memoryEntry{value: []byte(strconv.FormatInt(n, 10))}
	if ttl > 0 {
		if existing, ok := c.entries[key]; ok && !existing.expired() && !existing.expiresAt.IsZero() {
			entry.expiresAt = existing.expiresAt
		} else {
			entry.expiresAt = time.Now().Add(ttl)
		}
	}
	c.entries[key] = entry
	return n, nil
}

func (c *MemoryCache) Close() error {
	return nil
}
