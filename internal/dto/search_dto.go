package dto

type SearchRequest struct {
	Query         string `json:"query" validate:"required"`
	SearchDepth   string `json:"search_depth,omitempty"`
	Topic         string `json:"topic,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
	IncludeAnswer *bool  `json:"include_answer,omitempty"`
}

type SearchResultItem struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type SearchMeta struct {
	ResponseTimeMs int64  `json:"response_time_ms"`
	ResultCount    int    `json:"result_count"`
	Topic          string `json:"topic"`
	Depth          string `json:"depth"`
}

type SearchResponse struct {
	Success bool               `json:"success"`
	Query   string             `json:"query"`
	Answer  string             `json:"answer,omitempty"`
	Results []SearchResultItem `json:"results"`
	Context string             `json:"context"`
	Meta    SearchMeta         `json:"meta"`
}

type SearchStatusResponse struct {
	Status   string   `json:"status"` // "ready" | "not_configured"
	Message  string   `json:"message"`
	Provider string   `json:"provider"`
	Features []string `json:"features"`
}

type DetectSearchRequest struct {
	Message string `json:"message" validate:"required"`
}

type DetectSearchResponse struct {
	NeedsSearch bool   `json:"needs_search"`
	Query       string `json:"query,omitempty"`
	Reason      string `json:"reason"`
}
