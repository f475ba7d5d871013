package session

import (
	"time"

	"github.com/google/uuid"
)

// Cookie parameters for the anonymous session identifier. The identifier is
// a rate-limiting correlation key, not an authentication credential: the
// cookie is deliberately readable by client-side code.
const (
	CookieName   = "nex_session_id"
	CookieMaxAge = 30 * 24 * time.Hour

	// PendingID is returned when no cookie was sent. The edge middleware
	// issues the real identifier on the response, so it becomes visible on
	// the client's next request, not this one.
	PendingID = "pending"
)

// Session is the anonymous client correlation identifier read from the
// inbound cookie. The orchestration layer never creates identifiers itself.
type Session struct {
	ID     string
	Exists bool
}

// FromCookie reads a session from a raw cookie value. Absent cookie yields
// the pending sentinel; callers must treat quota, cache and memory
// operations under a pending session as no-ops.
func FromCookie(value string) Session {
	if value == "" {
		return Session{ID: PendingID, Exists: false}
	}
	return Session{ID: value, Exists: true}
}

// Usable reports whether quota/cache/memory operations should run for this
// session. Pending or malformed identifiers degrade to no-ops.
func (s Session) Usable() bool {
	return s.Exists && IsValid(s.ID)
}

// IsValid checks the fixed identifier grammar: lowercase hyphenated
// 36-character UUID v4 (version nibble 4, variant 8/9/a/b). Defensive
// validation only; there is nothing cryptographic about the identifier.
func IsValid(id string) bool {
	if len(id) != 36 {
		return false
	}
	for i := 0; i < 36; i++ {
		c := id[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isLowerHex(c) {
				return false
			}
		}
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

func isLowerHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
