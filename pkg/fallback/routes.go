package fallback

import (
	"errors"
	"slices"
	"strings"
)

// ErrModelNotAllowed is returned when an explicit model override is not in
// the configured allow-list. Raised before any network call.
var ErrModelNotAllowed = errors.New("model not allowed")

// ModelConfig is the resolved primary/alternate pair for one chat mode.
// An empty Alternate means no fallback attempt is made.
type ModelConfig struct {
	Primary   string
	Alternate string
}

// Routes maps a logical mode to its models. It is built once at startup from
// the layered configuration (env var, per-mode default, global default,
// last-resort identifier); no string-keyed environment lookups happen at
// request time.
type Routes struct {
	Modes   map[string]ModelConfig
	Default ModelConfig

	// AllowedModels, when non-empty, restricts explicit override models.
	AllowedModels []string
}

// Resolve picks the model configuration for a request. An explicit override
// is used as primary with no alternate; it must pass the allow-list if one
// is configured. Unknown modes fall back to the default route.
func (r Routes) Resolve(mode, override string) (ModelConfig, error) {
	if override != "" {
		if len(r.AllowedModels) > 0 && !slices.Contains(r.AllowedModels, override) {
			return ModelConfig{}, ErrModelNotAllowed
		}
		return ModelConfig{Primary: override}, nil
	}

	if cfg, ok := r.Modes[strings.ToLower(mode)]; ok {
		return cfg, nil
	}
	return r.Default, nil
}
