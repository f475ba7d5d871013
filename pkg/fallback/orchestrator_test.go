package fallback

import (
	"context"
	"testing"

	"nex-terminal-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedProvider fails or answers per model and records what was attempted.
type scriptedProvider struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{}
	for _, opt := range options {
		opt(opts)
	}
	p.calls = append(p.calls, opts.Model)

	if err, ok := p.errs[opts.Model]; ok {
		return "", err
	}
	return p.replies[opts.Model], nil
}

func testRoutes() Routes {
	return Routes{
		Modes: map[string]ModelConfig{
			"normal":   {Primary: "model-a", Alternate: "model-b"},
			"pensante": {Primary: "model-c"},
		},
		Default:       ModelConfig{Primary: "model-a", Alternate: "model-b"},
		AllowedModels: []string{"model-a", "model-b", "model-c"},
	}
}

func TestExecutePrimarySucceeds(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{"model-a": "resposta"}}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	result, err := orch.Execute(context.Background(), "normal", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "resposta", result.Content)
	assert.Equal(t, "model-a", result.Model)
	assert.Equal(t, StateSucceeded, result.State)
	assert.False(t, result.FallbackUsed)
	assert.Empty(t, result.OriginalModel)
	assert.Equal(t, []string{"model-a"}, provider.calls, "alternate must not be attempted")
}

func TestExecuteFallsBackToAlternate(t *testing.T) {
	provider := &scriptedProvider{
		replies: map[string]string{"model-b": "resposta do alternativo"},
		errs:    map[string]error{"model-a": &llm.StatusError{StatusCode: 503, Message: "overloaded"}},
	}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	result, err := orch.Execute(context.Background(), "normal", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "resposta do alternativo", result.Content)
	assert.Equal(t, "model-b", result.Model)
	assert.True(t, result.FallbackUsed)
	assert.Equal(t, "model-a", result.OriginalModel)
	assert.Equal(t, "model-b", result.FallbackModel)
	assert.Equal(t, []string{"model-a", "model-b"}, provider.calls)
}

func TestExecuteBothAttemptsFail(t *testing.T) {
	provider := &scriptedProvider{
		errs: map[string]error{
			"model-a": &llm.StatusError{StatusCode: 503, Message: "overloaded"},
			"model-b": &llm.StatusError{StatusCode: 429, Message: "rate limited"},
		},
	}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	_, err := orch.Execute(context.Background(), "normal", "", nil)
	require.Error(t, err)

	// The terminal error is the alternate's, not the primary's.
	assert.Equal(t, 429, StatusCode(err))
	assert.Equal(t, []string{"model-a", "model-b"}, provider.calls)
}

func TestExecuteNoAlternateConfigured(t *testing.T) {
	provider := &scriptedProvider{
		errs: map[string]error{"model-c": &llm.StatusError{StatusCode: 500, Message: "boom"}},
	}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	_, err := orch.Execute(context.Background(), "pensante", "", nil)
	require.Error(t, err)
	assert.Equal(t, 500, StatusCode(err))
	assert.Equal(t, []string{"model-c"}, provider.calls, "exactly one attempt without an alternate")
}

func TestExecuteCredentialRejectionSkipsAlternate(t *testing.T) {
	provider := &scriptedProvider{
		replies: map[string]string{"model-b": "should never be attempted"},
		errs:    map[string]error{"model-a": &llm.StatusError{StatusCode: 401, Message: "no key"}},
	}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	_, err := orch.Execute(context.Background(), "normal", "", nil)
	require.Error(t, err)

	assert.Equal(t, 401, StatusCode(err))
	assert.Equal(t, []string{"model-a"}, provider.calls, "a configuration error must not trigger a retry")
}

func TestExecuteOverrideRejectedBeforeNetwork(t *testing.T) {
	provider := &scriptedProvider{}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	_, err := orch.Execute(context.Background(), "normal", "model-z", nil)
	assert.ErrorIs(t, err, ErrModelNotAllowed)
	assert.Empty(t, provider.calls, "a rejected override must not reach the provider")
}

func TestExecuteOverrideHasNoAlternate(t *testing.T) {
	provider := &scriptedProvider{
		errs: map[string]error{"model-b": &llm.StatusError{StatusCode: 500, Message: "boom"}},
	}
	orch := NewOrchestrator(provider, testRoutes(), nopLogger{})

	_, err := orch.Execute(context.Background(), "normal", "model-b", nil)
	require.Error(t, err)
	assert.Equal(t, []string{"model-b"}, provider.calls, "overrides never fall back")
}

func TestRoutesResolve(t *testing.T) {
	routes := testRoutes()

	tests := []struct {
		name     string
		mode     string
		override string
		want     ModelConfig
		wantErr  error
	}{
		{"known mode", "normal", "", ModelConfig{Primary: "model-a", Alternate: "model-b"}, nil},
		{"mode is case insensitive", "NORMAL", "", ModelConfig{Primary: "model-a", Alternate: "model-b"}, nil},
		{"unknown mode falls back to default", "turbo", "", ModelConfig{Primary: "model-a", Alternate: "model-b"}, nil},
		{"allowed override", "normal", "model-c", ModelConfig{Primary: "model-c"}, nil},
		{"disallowed override", "normal", "model-z", ModelConfig{}, ErrModelNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := routes.Resolve(tt.mode, tt.override)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoutesResolveEmptyAllowList(t *testing.T) {
	routes := Routes{Default: ModelConfig{Primary: "model-a"}}

	got, err := routes.Resolve("normal", "any/model")
	require.NoError(t, err, "empty allow-list accepts any override")
	assert.Equal(t, ModelConfig{Primary: "any/model"}, got)
}

func TestStatusCodeDefault(t *testing.T) {
	assert.Equal(t, 500, StatusCode(assert.AnError))
	assert.Equal(t, 401, StatusCode(&llm.StatusError{StatusCode: 401, Message: "no key"}))
}
