package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable wraps transport-level store failures. Callers check it with
// errors.Is to take the fail-open branch (zero usage, cache miss) instead of
// failing the request.
var ErrUnavailable = errors.New("key-value store unavailable")

// ErrInvalidDriver is returned by NewStore for an unknown driver name.
var ErrInvalidDriver = errors.New("invalid kv store driver")

// Store is the contract shared by the Redis driver and the in-memory driver.
// All mutations map to single atomic primitives of the backing store; no
// method requires a client-side read-modify-write across keys.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes a value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments an integer key, creating it at 1.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the TTL of an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// LPush prepends a value to a list.
	LPush(ctx context.Context, key, value string) error

	// LRange returns list elements between start and stop inclusive.
	// Redis semantics: stop -1 means the last element.
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// LTrim truncates a list to the range [start, stop].
	LTrim(ctx context.Context, key string, start, stop int64) error

	// LLen returns the length of a list.
	LLen(ctx context.Context, key string) (int64, error)
}

// Driver names accepted by NewStore.
const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// NewStore selects a driver by name. The memory driver shares the exact
// method contracts with Redis and is selected by configuration, not by
// credential presence.
func NewStore(driver, redisURL string) (Store, error) {
	switch driver {
	case DriverRedis:
		return NewRedisStore(redisURL), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, ErrInvalidDriver
	}
}
