package imagegen

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is a configuration error, surfaced before any network
// call. No retry.
var ErrMissingAPIKey = errors.New("image provider API key not configured")

// ErrTimeout marks an aborted attempt. Treated as a transient failure.
var ErrTimeout = errors.New("image generation timed out")

// Result of one generation attempt. Exactly one of Image / Loading is
// meaningful: a loading result means the upstream model is still warming up
// and the caller should retry after RetryAfter seconds (a retryable signal,
// not a hard error).
type Result struct {
	Image      string // data URL, base64 PNG
	Loading    bool
	RetryAfter int // seconds, only when Loading
}

// Generator defines the contract for any image generation backend
type Generator interface {
	Generate(ctx context.Context, prompt, negativePrompt string) (*Result, error)
}
