package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key was not found in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the non-authoritative hot tier in front of the durable
// store. Entries may disappear at any time; correctness never depends
// on its contents.
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Increment atomically adds one to an integer counter, creating it
	// at 1 with the given TTL if absent, and returns the new value.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Close releases the underlying connection, if any.
	Close() error
}
