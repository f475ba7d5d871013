package prompt

import (
	"context"
	"fmt"
	"strings"

	"nex-terminal-be/pkg/llm"
)

const (
	minPromptLen = 3
	maxPromptLen = 500
)

// blockedTerms never reach the store or the upstream providers.
var blockedTerms = []string{
	"nsfw", "nude", "naked", "gore", "explicit",
}

// qualityModifiers are appended when the improver model is unavailable, so
// the studio still hands back something better than the raw idea.
var qualityModifiers = []string{
	"highly detailed",
	"8k resolution",
	"professional quality",
	"sharp focus",
	"masterpiece",
}

const defaultNegativePrompt = "blurry, bad quality, distorted, deformed, ugly, low resolution"

// improverPersona steers the chat provider toward SDXL-ready prompts.
const improverPersona = `Você é um especialista em prompt engineering para Stable Diffusion XL.

Sua tarefa é transformar descrições simples em prompts otimizados para geração de imagens de alta qualidade.

REGRAS:
1. Manter o conceito original do usuário
2. Adicionar detalhes de qualidade: lighting, composition, style
3. Incluir termos técnicos de arte digital quando apropriado
4. Formato: descrição principal, seguida de modificadores separados por vírgula
5. Máximo 150 palavras
6. Sempre em inglês (SDXL funciona melhor em inglês)
7. NÃO usar aspas no prompt final
8. NÃO explicar, apenas retorne o prompt otimizado`

// ValidationError is a request-level rejection, surfaced before any store or
// provider call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate applies the studio input rules to a prompt or idea.
func Validate(input string) error {
	trimmed := strings.TrimSpace(input)

	if len(trimmed) < minPromptLen {
		return &ValidationError{Reason: fmt.Sprintf("prompt must be at least %d characters", minPromptLen)}
	}
	if len(trimmed) > maxPromptLen {
		return &ValidationError{Reason: fmt.Sprintf("prompt must be at most %d characters", maxPromptLen)}
	}

	lower := strings.ToLower(trimmed)
	for _, term := range blockedTerms {
		if strings.Contains(lower, term) {
			return &ValidationError{Reason: "prompt contains disallowed content"}
		}
	}
	return nil
}

// Improved is the result of Improve: the user's idea plus the optimized SDXL
// prompt and a negative prompt.
type Improved struct {
	Original       string
	Optimized      string
	NegativePrompt string
}

// Engine turns a plain idea into an SDXL-optimized prompt via the chat
// provider.
type Engine struct {
	provider llm.ChatProvider
	model    string
}

func NewEngine(provider llm.ChatProvider, model string) *Engine {
	return &Engine{provider: provider, model: model}
}

// Improve asks the improver persona for an optimized prompt. If the provider
// fails, it degrades to the original idea with quality modifiers appended
// rather than failing the request.
func (e *Engine) Improve(ctx context.Context, idea string) (*Improved, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: improverPersona},
		{Role: llm.RoleUser, Content: idea},
	}

	optimized, err := e.provider.Chat(ctx, messages, llm.WithModel(e.model), llm.WithMaxTokens(300))
	if err != nil || strings.TrimSpace(optimized) == "" {
		optimized = idea + ", " + strings.Join(qualityModifiers, ", ")
	}

	return &Improved{
		Original:       idea,
		Optimized:      strings.TrimSpace(optimized),
		NegativePrompt: defaultNegativePrompt,
	}, nil
}
