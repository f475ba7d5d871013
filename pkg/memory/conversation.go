package memory

import (
	"context"
	"encoding/json"
	"time"

	"nex-terminal-be/pkg/kvstore"
)

const (
	// MaxTurns is the hard cap on stored turns per session.
	MaxTurns = 10

	// Window is the idle lifetime of a conversation, refreshed on append.
	Window = 30 * time.Minute
)

// Turn is one chat message in the rolling window.
type Turn struct {
	Role      string `json:"role"` // "user" | "assistant"
	Content   string `json:"content"`
	Mode      string `json:"mode"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// Conversation keeps a bounded, time-limited window of recent chat turns per
// session. Best effort by design: it never gates quota, cache or generation,
// and keeps logging even after the quota is exhausted.
type Conversation struct {
	store kvstore.Store
}

func NewConversation(store kvstore.Store) *Conversation {
	return &Conversation{store: store}
}

// Append pushes a turn onto the front of the list, truncates to the most
// recent MaxTurns and refreshes the TTL. The three steps are one logical
// operation but are not atomic across failures; a crash mid-sequence leaves
// at worst a slightly stale TTL.
func (c *Conversation) Append(ctx context.Context, sessionID string, turn Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	key := kvstore.ChatMemoryKey(sessionID)

	if err := c.store.LPush(ctx, key, string(payload)); err != nil {
		return err
	}
	if err := c.store.LTrim(ctx, key, 0, MaxTurns-1); err != nil {
		return err
	}
	return c.store.Expire(ctx, key, Window)
}

// History returns the stored turns oldest first. The list is stored newest
// first and reversed on read. Entries that fail to decode are skipped.
func (c *Conversation) History(ctx context.Context, sessionID string) ([]Turn, error) {
	raw, err := c.store.LRange(ctx, kvstore.ChatMemoryKey(sessionID), 0, -1)
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var turn Turn
		if err := json.Unmarshal([]byte(raw[i]), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
