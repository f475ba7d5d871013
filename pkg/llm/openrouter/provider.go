package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"nex-terminal-be/pkg/llm"
)

// OpenRouterProvider talks to the OpenRouter chat-completions API
// (OpenAI compatible). Chat calls carry no client timeout; the upstream
// connection's own behavior bounds them.
type OpenRouterProvider struct {
	apiKey  string
	baseURL string
	siteURL string
	title   string
}

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []llm.Message `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func NewOpenRouterProvider(apiKey, baseURL, siteURL, title string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		siteURL: siteURL,
		title:   title,
	}
}

func (p *OpenRouterProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.apiKey == "" {
		return "", &llm.StatusError{StatusCode: http.StatusUnauthorized, Message: "provider API key not configured"}
	}

	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}

	reqBody := chatRequest{
		Model:     opts.Model,
		Messages:  history,
		MaxTokens: opts.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	if p.siteURL != "" {
		req.Header.Set("HTTP-Referer", p.siteURL)
	}
	if p.title != "" {
		req.Header.Set("X-Title", p.title)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", &llm.StatusError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		code := chatResp.Error.Code
		if code == 0 {
			code = http.StatusBadGateway
		}
		return "", &llm.StatusError{StatusCode: code, Message: chatResp.Error.Message}
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from openrouter api")
	}

	return chatResp.Choices[0].Message.Content, nil
}
