package kvstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is the in-process implementation of Store. It exists for local
// development and tests and honours the same method contracts as the Redis
// driver, TTL expiry included. Scalars and lists live in a go-cache instance;
// the mutex serialises the read-modify-write that go-cache cannot do for
// list values.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	// Purge interval is coarse; expired entries are also filtered on read.
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}
	switch val := v.(type) {
	case string:
		return val, true, nil
	case int64:
		return strconv.FormatInt(val, 10), true, nil
	default:
		return "", false, nil
	}
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.cache.Set(key, value, toExpiration(ttl))
	return nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count, err := s.cache.IncrementInt64(key, 1); err == nil {
		return count, nil
	}
	// Absent key: INCR creates it at 1 with no expiry, like Redis.
	s.cache.Set(key, int64(1), cache.NoExpiration)
	return 1, nil
}

func (s *MemoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.cache.Get(key)
	if !found {
		return nil
	}
	s.cache.Set(key, v, toExpiration(ttl))
	return nil
}

func (s *MemoryStore) LPush(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, _ := s.list(key)
	s.cache.Set(key, append([]string{value}, list...), cache.NoExpiration)
	return nil
}

func (s *MemoryStore) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, found := s.list(key)
	if !found {
		return []string{}, nil
	}
	lo, hi, ok := sliceBounds(int64(len(list)), start, stop)
	if !ok {
		return []string{}, nil
	}
	out := make([]string, hi-lo)
	copy(out, list[lo:hi])
	return out, nil
}

func (s *MemoryStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, found := s.list(key)
	if !found {
		return nil
	}
	lo, hi, ok := sliceBounds(int64(len(list)), start, stop)
	if !ok {
		s.cache.Delete(key)
		return nil
	}
	trimmed := make([]string, hi-lo)
	copy(trimmed, list[lo:hi])
	s.cache.Set(key, trimmed, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) LLen(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, _ := s.list(key)
	return int64(len(list)), nil
}

func (s *MemoryStore) list(key string) ([]string, bool) {
	v, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	list, ok := v.([]string)
	return list, ok
}

// sliceBounds converts Redis-style inclusive indexes (negative = from the
// end) into Go slice bounds. ok is false when the range is empty.
func sliceBounds(length, start, stop int64) (int64, int64, bool) {
	if start < 0 {
		start = length + start
	}
	if stop < 0 {
		stop = length + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop || start >= length {
		return 0, 0, false
	}
	return start, stop + 1, true
}

func toExpiration(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return cache.NoExpiration
	}
	return ttl
}
