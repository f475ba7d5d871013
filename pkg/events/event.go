package events

import "time"

// Topic and type names for the in-process event bus.
const (
	TopicChatTurns = "CHAT_TURN_RECORDED"
)

// ChatTurnRecorded is published after a completed exchange so the
// conversation memory worker can persist turns off the request path. Memory
// writes are best effort; a dropped event loses at most one logged turn.
type ChatTurnRecorded struct {
	SessionID  string    `json:"session_id"`
	Role       string    `json:"role"` // "user" | "assistant"
	Content    string    `json:"content"`
	Mode       string    `json:"mode"`
	OccurredAt time.Time `json:"occurred_at"`
}
