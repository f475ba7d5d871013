package contentcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"nex-terminal-be/pkg/kvstore"
)

// DefaultTTL bounds the lifetime of a cached artifact.
const DefaultTTL = 6 * time.Hour

// digestLen is the number of hex characters kept from the SHA-256 sum.
const digestLen = 16

// Hash derives the cache key from the generation input. Pure function of the
// input text: no randomness, no session dependence, stable across restarts.
func Hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:digestLen]
}

// Cache maps a content digest to a previously produced artifact. The cache
// is global across sessions and advisory: a miss never blocks generation and
// a store failure degrades to a miss.
type Cache struct {
	store kvstore.Store
	ttl   time.Duration
}

func New(store kvstore.Store) *Cache {
	return &Cache{store: store, ttl: DefaultTTL}
}

// Get returns the cached artifact for a digest. The error is non-nil only
// for store failures, in which case ok is false (treat as miss).
func (c *Cache) Get(ctx context.Context, digest string) (string, bool, error) {
	val, found, err := c.store.Get(ctx, kvstore.StudioImageKey(digest))
	if err != nil {
		return "", false, err
	}
	return val, found, nil
}

// Put stores an artifact under a digest with the fixed TTL. Entries are
// immutable within their lifetime; a repeat Put for the same digest rewrites
// identical content.
func (c *Cache) Put(ctx context.Context, digest, artifact string) error {
	return c.store.Set(ctx, kvstore.StudioImageKey(digest), artifact, c.ttl)
}
