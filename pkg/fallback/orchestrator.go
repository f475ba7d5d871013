package fallback

import (
	"context"
	"errors"
	"net/http"

	"nex-terminal-be/internal/pkg/logger"
	"nex-terminal-be/pkg/llm"
)

// State tracks the orchestrator through a single execution:
// NotAttempted -> PrimaryAttempted -> {Succeeded, AlternateAttempted},
// terminal states Succeeded or Failed.
type State int

const (
	StateNotAttempted State = iota
	StatePrimaryAttempted
	StateAlternateAttempted
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotAttempted:
		return "not_attempted"
	case StatePrimaryAttempted:
		return "primary_attempted"
	case StateAlternateAttempted:
		return "alternate_attempted"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is a successful completion, annotated with fallback provenance when
// the alternate model produced it.
type Result struct {
	Content string
	Model   string
	State   State

	FallbackUsed  bool
	OriginalModel string
	FallbackModel string
}

// Orchestrator attempts the primary model and, on any failure, retries
// exactly once against the statically configured alternate. One retry
// against a distinct model bounds latency and cost while covering the
// common case of a single upstream model being temporarily degraded.
type Orchestrator struct {
	provider llm.ChatProvider
	routes   Routes
	log      logger.ILogger
}

func NewOrchestrator(provider llm.ChatProvider, routes Routes, log logger.ILogger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		routes:   routes,
		log:      log,
	}
}

// Resolve exposes route resolution without executing, for callers that need
// to reject an unauthorized override before doing any other work.
func (o *Orchestrator) Resolve(mode, override string) (ModelConfig, error) {
	return o.routes.Resolve(mode, override)
}

// Execute resolves the models for the mode and runs the fallback protocol
// with the assembled message sequence. When both attempts fail, the returned
// error is the terminal attempt's (the alternate's if one was tried).
func (o *Orchestrator) Execute(ctx context.Context, mode, override string, messages []llm.Message) (*Result, error) {
	cfg, err := o.routes.Resolve(mode, override)
	if err != nil {
		return nil, err
	}

	content, primaryErr := o.provider.Chat(ctx, messages, llm.WithModel(cfg.Primary))
	if primaryErr == nil {
		return &Result{
			Content: content,
			Model:   cfg.Primary,
			State:   StateSucceeded,
		}, nil
	}

	if cfg.Alternate == "" {
		o.log.Error("fallback", "primary model failed, no alternate configured", map[string]interface{}{
			"mode":  mode,
			"model": cfg.Primary,
			"state": StateFailed.String(),
			"error": primaryErr.Error(),
		})
		return nil, primaryErr
	}

	// A credential rejection is a configuration problem; the alternate
	// would fail identically before any network call.
	if StatusCode(primaryErr) == http.StatusUnauthorized {
		o.log.Error("fallback", "primary model rejected credentials, not retrying", map[string]interface{}{
			"mode":  mode,
			"model": cfg.Primary,
			"state": StateFailed.String(),
			"error": primaryErr.Error(),
		})
		return nil, primaryErr
	}

	o.log.Warn("fallback", "primary model failed, retrying against alternate", map[string]interface{}{
		"mode":      mode,
		"model":     cfg.Primary,
		"alternate": cfg.Alternate,
		"state":     StateAlternateAttempted.String(),
		"error":     primaryErr.Error(),
	})

	content, alternateErr := o.provider.Chat(ctx, messages, llm.WithModel(cfg.Alternate))
	if alternateErr != nil {
		o.log.Error("fallback", "alternate model failed", map[string]interface{}{
			"mode":  mode,
			"model": cfg.Alternate,
			"state": StateFailed.String(),
			"error": alternateErr.Error(),
		})
		return nil, alternateErr
	}

	return &Result{
		Content:       content,
		Model:         cfg.Alternate,
		State:         StateSucceeded,
		FallbackUsed:  true,
		OriginalModel: cfg.Primary,
		FallbackModel: cfg.Alternate,
	}, nil
}

// StatusCode extracts the upstream status from a terminal error, defaulting
// to 500 when the failure carried no status.
func StatusCode(err error) int {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return http.StatusInternalServerError
}
