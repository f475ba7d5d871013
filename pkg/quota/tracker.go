package quota

import (
	"context"
	"strconv"
	"time"

	"nex-terminal-be/pkg/kvstore"
)

// Window is the rolling period bounding a session's generation count.
const Window = 24 * time.Hour

// DefaultDailyLimit matches the reference deployment.
const DefaultDailyLimit = 2

// Usage is a pure read of the counter.
type Usage struct {
	Count     int
	Remaining int
}

// Increment reports the counter state after an atomic bump.
type Increment struct {
	Count        int
	LimitReached bool
}

// Tracker bounds expensive operations per session per quota window. All
// state lives in the key-value store; Tracker itself is stateless and safe
// for concurrent use.
type Tracker struct {
	store kvstore.Store
	limit int
}

func NewTracker(store kvstore.Store, limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Tracker{store: store, limit: limit}
}

func (t *Tracker) Limit() int {
	return t.limit
}

// Usage reads the counter. On store failure it fails open: the returned
// Usage reports zero count and full remaining, and the wrapped
// kvstore.ErrUnavailable is returned alongside so the caller sees the
// degradation branch explicitly.
func (t *Tracker) Usage(ctx context.Context, sessionID string) (Usage, error) {
	val, found, err := t.store.Get(ctx, kvstore.StudioUsageKey(sessionID))
	if err != nil {
		return Usage{Count: 0, Remaining: t.limit}, err
	}

	count := 0
	if found {
		count, _ = strconv.Atoi(val)
	}

	remaining := t.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Usage{Count: count, Remaining: remaining}, nil
}

// Increment atomically bumps the counter. On the transition from absent to
// count 1 the 24h window TTL is set. LimitReached means count > limit.
//
// Callers invoke this even when the downstream generation attempt failed;
// quota pays for attempts, not successes, so repeated failing calls cannot
// bypass the limit.
func (t *Tracker) Increment(ctx context.Context, sessionID string) (Increment, error) {
	key := kvstore.StudioUsageKey(sessionID)

	count, err := t.store.Incr(ctx, key)
	if err != nil {
		return Increment{}, err
	}

	if count == 1 {
		// Best effort; the increment itself already happened.
		_ = t.store.Expire(ctx, key, Window)
	}

	return Increment{
		Count:        int(count),
		LimitReached: count > int64(t.limit),
	}, nil
}
