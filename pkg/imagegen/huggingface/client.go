package huggingface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"nex-terminal-be/pkg/imagegen"
)

const (
	defaultBaseURL = "https://api-inference.huggingface.co/models"
	defaultModel   = "stabilityai/stable-diffusion-xl-base-1.0"

	// requestTimeout aborts the attempt; distinct from the 503 "loading"
	// signal, which is surfaced as retryable.
	requestTimeout = 40 * time.Second

	defaultNegativePrompt = "blurry, bad quality, distorted"
	inferenceSteps        = 30
	guidanceScale         = 7.5
)

// Client generates images through the Hugging Face inference API (SDXL).
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	NegativePrompt    string  `json:"negative_prompt"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

type loadingResponse struct {
	EstimatedTime float64 `json:"estimated_time"`
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{},
	}
}

func (c *Client) Generate(ctx context.Context, prompt, negativePrompt string) (*imagegen.Result, error) {
	if c.apiKey == "" {
		return nil, imagegen.ErrMissingAPIKey
	}

	if negativePrompt == "" {
		negativePrompt = defaultNegativePrompt
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reqBody := generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			NegativePrompt:    negativePrompt,
			NumInferenceSteps: inferenceSteps,
			GuidanceScale:     guidanceScale,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, imagegen.ErrTimeout
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// 503 means the model is warming up, not that the attempt is dead.
	if resp.StatusCode == http.StatusServiceUnavailable {
		var loading loadingResponse
		_ = json.NewDecoder(resp.Body).Decode(&loading)
		retryAfter := int(math.Ceil(loading.EstimatedTime))
		if retryAfter <= 0 {
			retryAfter = 20
		}
		return &imagegen.Result{Loading: true, RetryAfter: retryAfter}, nil
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	// Response body is the binary image.
	imageBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, imagegen.ErrTimeout
		}
		return nil, fmt.Errorf("failed to read image payload: %w", err)
	}

	return &imagegen.Result{
		Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageBytes),
	}, nil
}
