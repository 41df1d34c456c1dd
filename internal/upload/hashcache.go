package upload

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"sync"
)

// HashCache memoizes the SHA-512 of raw API keys so hot uploaders do
// not pay the hash on every request. Populated lazily per key and only
// cleared on process restart or explicit eviction.
type HashCache struct {
	hashes sync.Map
}

// NewHashCache creates an empty hash cache.
func NewHashCache() *HashCache {
	return &HashCache{}
}

// APIKeyHash returns the hex SHA-512 of the raw API key.
func (c *HashCache) APIKeyHash(rawKey string) string {
	if cached, ok := c.hashes.Load(rawKey); ok {
		return cached.(string)
	}

	sum := sha512.Sum512([]byte(rawKey))
	hash := hex.EncodeToString(sum[:])
	c.hashes.Store(rawKey, hash)
	return hash
}

// Evict removes a raw key from the cache.
func (c *HashCache) Evict(rawKey string) {
	c.hashes.Delete(rawKey)
}

// HashUploaderID returns the hex SHA-256 of a raw uploader ID. The
// hash is one-way; raw uploader identifiers are never stored.
func HashUploaderID(uploaderID string) string {
	sum := sha256.Sum256([]byte(uploaderID))
	return hex.EncodeToString(sum[:])
}
