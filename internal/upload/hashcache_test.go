package upload_test

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xivmarket/marketboard/internal/upload"
)

func TestHashCache_APIKeyHash(t *testing.T) {
	c := upload.NewHashCache()

	sum := sha512.Sum512([]byte("my-api-key"))
	want := hex.EncodeToString(sum[:])

	assert.Equal(t, want, c.APIKeyHash("my-api-key"))
	// Second lookup is served from the cache and must be identical
	assert.Equal(t, want, c.APIKeyHash("my-api-key"))

	c.Evict("my-api-key")
	assert.Equal(t, want, c.APIKeyHash("my-api-key"))
}

func TestHashCache_DistinctKeys(t *testing.T) {
	c := upload.NewHashCache()

	assert.NotEqual(t, c.APIKeyHash("key-a"), c.APIKeyHash("key-b"))
}

func TestHashUploaderID(t *testing.T) {
	sum := sha256.Sum256([]byte("uploader-42"))
	want := hex.EncodeToString(sum[:])

	assert.Equal(t, want, upload.HashUploaderID("uploader-42"))
}
