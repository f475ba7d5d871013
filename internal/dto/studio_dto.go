package dto

import "time"

type GenerateImageRequest struct {
	Prompt         string `json:"prompt" validate:"required"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	SkipCache      bool   `json:"skip_cache,omitempty"`
}

type GenerateImageResponse struct {
	Success   bool   `json:"success"`
	Image     string `json:"image,omitempty"` // data URL
	Cached    bool   `json:"cached"`
	Remaining int    `json:"remaining"`

	// Loading means the upstream model is warming up; retry after
	// RetryAfter seconds. Surfaced as HTTP 202.
	Loading    bool `json:"loading,omitempty"`
	RetryAfter int  `json:"retry_after,omitempty"`
}

type UsageResponse struct {
	SessionId string `json:"session_id"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
}

type ImprovePromptRequest struct {
	Idea string `json:"idea" validate:"required"`
}

type ImprovePromptResponse struct {
	Success        bool   `json:"success"`
	SessionId      string `json:"session_id"`
	Original       string `json:"original"`
	Optimized      string `json:"optimized"`
	NegativePrompt string `json:"negative_prompt"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily generation limit exceeded"
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

// LimitExceededResponse is the full 429 response structure
type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
