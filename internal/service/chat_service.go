package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"nex-terminal-be/internal/constant"
	"nex-terminal-be/internal/dto"
	"nex-terminal-be/internal/pkg/logger"
	"nex-terminal-be/internal/pkg/serverutils"
	"nex-terminal-be/pkg/events"
	"nex-terminal-be/pkg/fallback"
	"nex-terminal-be/pkg/llm"
	"nex-terminal-be/pkg/memory"
	"nex-terminal-be/pkg/search"
	"nex-terminal-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// IChatService defines the chat proxy service interface
type IChatService interface {
	SendChat(ctx context.Context, sess session.Session, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetHistory(ctx context.Context, sess session.Session) (*dto.ChatHistoryResponse, error)
}

// ChatOrchestrator is the part of the fallback orchestrator the chat service
// needs. Satisfied by *fallback.Orchestrator.
type ChatOrchestrator interface {
	Execute(ctx context.Context, mode, override string, messages []llm.Message) (*fallback.Result, error)
}

type chatService struct {
	orchestrator ChatOrchestrator
	conversation *memory.Conversation
	publisher    ITurnPublisherService
	searchClient *search.Client
	log          logger.ILogger
}

func NewChatService(
	orchestrator ChatOrchestrator,
	conversation *memory.Conversation,
	publisher ITurnPublisherService,
	searchClient *search.Client,
	log logger.ILogger,
) IChatService {
	return &chatService{
		orchestrator: orchestrator,
		conversation: conversation,
		publisher:    publisher,
		searchClient: searchClient,
		log:          log,
	}
}

func (s *chatService) SendChat(ctx context.Context, sess session.Session, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	mode := strings.ToLower(req.Mode)

	userContent := req.Message
	searchUsed := false
	if s.searchClient != nil && s.searchClient.Configured() && search.NeedsSearch(req.Message) {
		if contextBlock := s.searchContext(ctx, req.Message); contextBlock != "" {
			userContent = contextBlock + "\n\n" + req.Message
			searchUsed = true
		}
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.PersonaFor(mode)},
		{Role: llm.RoleUser, Content: userContent},
	}

	result, err := s.orchestrator.Execute(ctx, mode, req.Model, messages)
	if err != nil {
		if errors.Is(err, fallback.ErrModelNotAllowed) {
			return nil, serverutils.NewApiError(fiber.StatusBadRequest, "model not allowed")
		}
		code := fallback.StatusCode(err)
		s.log.Error("chat", "completion failed", map[string]interface{}{
			"mode":  mode,
			"code":  code,
			"error": err.Error(),
		})
		if code == fiber.StatusUnauthorized {
			return nil, serverutils.NewApiError(code, "provider API key not configured")
		}
		return nil, serverutils.NewApiError(code, "chat completion failed")
	}

	s.recordTurns(sess, mode, req.Message, result.Content)

	return &dto.SendChatResponse{
		Reply:         result.Content,
		Mode:          mode,
		Model:         result.Model,
		FallbackUsed:  result.FallbackUsed,
		OriginalModel: result.OriginalModel,
		FallbackModel: result.FallbackModel,
		SearchUsed:    searchUsed,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sess session.Session) (*dto.ChatHistoryResponse, error) {
	resp := &dto.ChatHistoryResponse{
		SessionId: sess.ID,
		Turns:     []dto.ChatTurnResponse{},
	}

	if !sess.Usable() {
		return resp, nil
	}

	turns, err := s.conversation.History(ctx, sess.ID)
	if err != nil {
		// Memory is best effort: an unreachable store reads as empty.
		s.log.Warn("chat", "history read degraded to empty", map[string]interface{}{
			"session": sess.ID,
			"error":   err.Error(),
		})
		return resp, nil
	}

	for _, t := range turns {
		resp.Turns = append(resp.Turns, dto.ChatTurnResponse{
			Role:      t.Role,
			Content:   t.Content,
			Mode:      t.Mode,
			Timestamp: t.Timestamp,
		})
	}
	return resp, nil
}

// searchContext runs the web search and formats the context block. Failures
// degrade to "no context", never to a failed chat.
func (s *chatService) searchContext(ctx context.Context, message string) string {
	opts := search.Options{
		Query:         search.ExtractQuery(message),
		IncludeAnswer: true,
	}
	if search.IsNewsQuery(message) {
		opts.Topic = search.TopicNews
		opts.Depth = search.DepthAdvanced
	}

	resp, err := s.searchClient.Search(ctx, opts)
	if err != nil {
		s.log.Warn("chat", "search context skipped", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return search.FormatContext(resp.Results, resp.Answer)
}

// recordTurns hands both turns of the exchange to the memory worker. Skipped
// for pending or malformed sessions; logging continues even once the studio
// quota is exhausted.
func (s *chatService) recordTurns(sess session.Session, mode, userMsg, reply string) {
	if !sess.Usable() || s.publisher == nil {
		return
	}

	now := time.Now()
	for _, ev := range []*events.ChatTurnRecorded{
		{SessionID: sess.ID, Role: llm.RoleUser, Content: userMsg, Mode: mode, OccurredAt: now},
		{SessionID: sess.ID, Role: llm.RoleAssistant, Content: reply, Mode: mode, OccurredAt: now},
	} {
		if err := s.publisher.PublishTurn(ev); err != nil {
			s.log.Warn("chat", "turn publish failed", map[string]interface{}{
				"session": sess.ID,
				"error":   err.Error(),
			})
		}
	}
}
