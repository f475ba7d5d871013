package contentcache

import (
	"context"
	"strings"
	"testing"
	"time"

	"nex-terminal-be/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	digest := Hash("a cat in space")

	assert.Len(t, digest, 16)
	assert.Equal(t, strings.ToLower(digest), digest)
	assert.Equal(t, digest, Hash("a cat in space"), "same input, same digest")
	assert.NotEqual(t, digest, Hash("a cat in space "), "whitespace is significant")
	assert.NotEqual(t, digest, Hash("a dog in space"))
}

func TestCachePutGet(t *testing.T) {
	ctx := context.Background()
	cache := New(kvstore.NewMemoryStore())

	digest := Hash("a cat in space")

	_, ok, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, digest, "data:image/png;base64,AAAA"))

	artifact, ok, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", artifact)

	// Digests never collide with other inputs' entries.
	_, ok, err = cache.Get(ctx, Hash("a dog in space"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheEntryExpires(t *testing.T) {
	ctx := context.Background()
	cache := New(kvstore.NewMemoryStore())
	cache.ttl = 20 * time.Millisecond

	digest := Hash("ephemeral")
	require.NoError(t, cache.Put(ctx, digest, "artifact"))

	time.Sleep(40 * time.Millisecond)

	_, ok, err := cache.Get(ctx, digest)
	require.NoError(t, err)
	assert.False(t, ok, "entry should be gone after its TTL")
}
