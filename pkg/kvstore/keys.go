package kvstore

// Key builders. Every key written through the store goes through one of
// these so the namespace stays greppable.

// ChatMemoryKey holds the rolling chat window for a session (30 min TTL).
func ChatMemoryKey(sessionID string) string {
	return "memory:chat:" + sessionID
}

// StudioUsageKey holds the daily generation counter for a session (24h TTL).
func StudioUsageKey(sessionID string) string {
	return "studio:usage:" + sessionID
}

// StudioImageKey holds a cached generated image by prompt digest (6h TTL).
func StudioImageKey(promptHash string) string {
	return "studio:image:" + promptHash
}
