package service

import (
	"context"
	"time"

	"nex-terminal-be/internal/dto"
	"nex-terminal-be/internal/pkg/serverutils"
	"nex-terminal-be/pkg/search"

	"github.com/gofiber/fiber/v2"
)

// ISearchService defines the web search service interface
type ISearchService interface {
	Status() *dto.SearchStatusResponse
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	Detect(req *dto.DetectSearchRequest) *dto.DetectSearchResponse
}

type searchService struct {
	client *search.Client
}

func NewSearchService(client *search.Client) ISearchService {
	return &searchService{client: client}
}

func (s *searchService) Status() *dto.SearchStatusResponse {
	if !s.client.Configured() {
		return &dto.SearchStatusResponse{
			Status:   "not_configured",
			Message:  "TAVILY_API_KEY not configured",
			Provider: "Tavily",
			Features: []string{"web_search", "news_search", "ai_answer"},
		}
	}
	return &dto.SearchStatusResponse{
		Status:   "ready",
		Message:  "Tavily Search API is configured and ready",
		Provider: "Tavily",
		Features: []string{"web_search", "news_search", "ai_answer"},
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	if !s.client.Configured() {
		return nil, serverutils.NewApiError(fiber.StatusServiceUnavailable, "search API key not configured")
	}

	opts := search.Options{
		Query:         req.Query,
		Depth:         req.SearchDepth,
		Topic:         req.Topic,
		MaxResults:    req.MaxResults,
		IncludeAnswer: req.IncludeAnswer == nil || *req.IncludeAnswer,
	}
	if search.IsNewsQuery(req.Query) {
		opts.Topic = search.TopicNews
		opts.Depth = search.DepthAdvanced
	}
	if opts.Depth == "" {
		opts.Depth = search.DepthBasic
	}
	if opts.Topic == "" {
		opts.Topic = search.TopicGeneral
	}

	start := time.Now()
	resp, err := s.client.Search(ctx, opts)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "search failed")
	}

	results := make([]dto.SearchResultItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, dto.SearchResultItem{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
			Score:   r.Score,
		})
	}

	return &dto.SearchResponse{
		Success: true,
		Query:   resp.Query,
		Answer:  resp.Answer,
		Results: results,
		Context: search.FormatContext(resp.Results, resp.Answer),
		Meta: dto.SearchMeta{
			ResponseTimeMs: time.Since(start).Milliseconds(),
			ResultCount:    len(resp.Results),
			Topic:          opts.Topic,
			Depth:          opts.Depth,
		},
	}, nil
}

func (s *searchService) Detect(req *dto.DetectSearchRequest) *dto.DetectSearchResponse {
	if !search.NeedsSearch(req.Message) {
		return &dto.DetectSearchResponse{
			NeedsSearch: false,
			Reason:      "message does not require web search",
		}
	}
	return &dto.DetectSearchResponse{
		NeedsSearch: true,
		Query:       search.ExtractQuery(req.Message),
		Reason:      "message contains real-time or current-events indicators",
	}
}
