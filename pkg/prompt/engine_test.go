package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nex-terminal-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ok", "a cat in space", false},
		{"minimum length", "abc", false},
		{"too short", "ab", true},
		{"whitespace only", "    ", true},
		{"trimmed before length check", "  ab  ", true},
		{"too long", strings.Repeat("x", 501), true},
		{"at max length", strings.Repeat("x", 500), false},
		{"blocked term", "a nude portrait", true},
		{"blocked term uppercase", "NSFW content", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.wantErr {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImprove(t *testing.T) {
	provider := &stubProvider{reply: "  a majestic cat floating in space, cinematic lighting  "}
	engine := NewEngine(provider, "model-a")

	improved, err := engine.Improve(context.Background(), "gato no espaço")
	require.NoError(t, err)

	assert.Equal(t, "gato no espaço", improved.Original)
	assert.Equal(t, "a majestic cat floating in space, cinematic lighting", improved.Optimized)
	assert.Equal(t, defaultNegativePrompt, improved.NegativePrompt)
}

func TestImproveDegradesOnProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	engine := NewEngine(provider, "model-a")

	improved, err := engine.Improve(context.Background(), "gato no espaço")
	require.NoError(t, err, "provider failure degrades, never fails the request")

	assert.Contains(t, improved.Optimized, "gato no espaço")
	assert.Contains(t, improved.Optimized, "highly detailed")
}

func TestImproveDegradesOnEmptyReply(t *testing.T) {
	provider := &stubProvider{reply: "   "}
	engine := NewEngine(provider, "model-a")

	improved, err := engine.Improve(context.Background(), "gato no espaço")
	require.NoError(t, err)
	assert.Contains(t, improved.Optimized, "gato no espaço")
}
