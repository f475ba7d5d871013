package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	val, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", val)

	require.NoError(t, store.Set(ctx, "k", "v", 0))

	val, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", "v", 20*time.Millisecond))

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(40 * time.Millisecond)

	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found, "entry should expire after its TTL")
}

func TestMemoryStoreIncr(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	count, err := store.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Incremented counters read back as their decimal form.
	val, found, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", val)
}

func TestMemoryStoreIncrThenExpire(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Incr(ctx, "counter")
	require.NoError(t, err)
	require.NoError(t, store.Expire(ctx, "counter", 20*time.Millisecond))

	time.Sleep(40 * time.Millisecond)

	count, err := store.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "expired counter should restart at 1")
}

func TestMemoryStoreExpireMissingKey(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Expire(context.Background(), "missing", time.Minute))
}

func TestMemoryStoreListOps(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, v := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.LPush(ctx, "list", v))
	}

	// LPush prepends: the list reads newest first.
	all, err := store.LRange(ctx, "list", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b", "a"}, all)

	n, err := store.LLen(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	head, err := store.LRange(ctx, "list", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, head)

	tail, err := store.LRange(ctx, "list", -2, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, tail)

	empty, err := store.LRange(ctx, "list", 5, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreLTrim(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, v := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, store.LPush(ctx, "list", v))
	}

	require.NoError(t, store.LTrim(ctx, "list", 0, 2))

	all, err := store.LRange(ctx, "list", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c"}, all)

	// Empty range removes the key entirely.
	require.NoError(t, store.LTrim(ctx, "list", 5, 10))
	n, err := store.LLen(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSliceBounds(t *testing.T) {
	tests := []struct {
		name         string
		length       int64
		start, stop  int64
		wantLo       int64
		wantHi       int64
		wantNonEmpty bool
	}{
		{"full range", 4, 0, -1, 0, 4, true},
		{"head", 4, 0, 1, 0, 2, true},
		{"negative start", 4, -2, -1, 2, 4, true},
		{"stop past end clamps", 4, 0, 99, 0, 4, true},
		{"start past end", 4, 5, 10, 0, 0, false},
		{"inverted", 4, 3, 1, 0, 0, false},
		{"empty list", 0, 0, -1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := sliceBounds(tt.length, tt.start, tt.stop)
			assert.Equal(t, tt.wantNonEmpty, ok)
			if ok {
				assert.Equal(t, tt.wantLo, lo)
				assert.Equal(t, tt.wantHi, hi)
			}
		})
	}
}

func TestNewStoreUnknownDriver(t *testing.T) {
	_, err := NewStore("etcd", "")
	assert.ErrorIs(t, err, ErrInvalidDriver)
}

func TestNewStoreMemoryDriver(t *testing.T) {
	store, err := NewStore(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}
