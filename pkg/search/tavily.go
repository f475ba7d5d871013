package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Depths and topics accepted by the Tavily API.
const (
	DepthBasic    = "basic"
	DepthAdvanced = "advanced"

	TopicGeneral = "general"
	TopicNews    = "news"
)

// Result is one search hit.
type Result struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Response is the Tavily search payload the orchestration layer consumes.
type Response struct {
	Query        string   `json:"query"`
	Answer       string   `json:"answer,omitempty"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time"`
}

// Options for one search call.
type Options struct {
	Query         string
	Depth         string // basic | advanced
	Topic         string // general | news
	Days          int    // for news, days back
	MaxResults    int    // capped at 10
	IncludeAnswer bool
}

// Client talks to the Tavily search API.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type searchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	Topic         string `json:"topic"`
	Days          int    `json:"days"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

func (c *Client) Search(ctx context.Context, opts Options) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("tavily API key not configured")
	}

	if opts.Depth == "" {
		opts.Depth = DepthBasic
	}
	if opts.Topic == "" {
		opts.Topic = TopicGeneral
	}
	if opts.Days <= 0 {
		opts.Days = 3
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	if opts.MaxResults > 10 {
		opts.MaxResults = 10
	}

	jsonData, err := json.Marshal(searchRequest{
		Query:         opts.Query,
		SearchDepth:   opts.Depth,
		Topic:         opts.Topic,
		Days:          opts.Days,
		MaxResults:    opts.MaxResults,
		IncludeAnswer: opts.IncludeAnswer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tavily api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// FormatContext renders search results as the context block prefixed to the
// user message before the chat call.
func FormatContext(results []Result, answer string) string {
	var b strings.Builder

	if answer != "" {
		b.WriteString("RESUMO: " + answer + "\n\n")
	}

	if len(results) > 0 {
		b.WriteString("FONTES:\n")
		for i, r := range results {
			content := truncate(r.Content, 300)
			b.WriteString(fmt.Sprintf("\n[%d] %s\n", i+1, r.Title))
			b.WriteString("    " + content + "\n")
			b.WriteString("    " + r.URL + "\n")
		}
	}

	return b.String()
}

// truncate cuts a string to at most limit bytes without splitting a UTF-8
// rune, which accented pt-BR content would otherwise trip over.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
