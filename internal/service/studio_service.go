package service

import (
	"context"
	"errors"
	"time"

	"nex-terminal-be/internal/dto"
	"nex-terminal-be/internal/pkg/logger"
	"nex-terminal-be/internal/pkg/serverutils"
	"nex-terminal-be/pkg/contentcache"
	"nex-terminal-be/pkg/imagegen"
	"nex-terminal-be/pkg/prompt"
	"nex-terminal-be/pkg/quota"
	"nex-terminal-be/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// IStudioService defines the image studio service interface
type IStudioService interface {
	Generate(ctx context.Context, sess session.Session, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error)
	Usage(ctx context.Context, sess session.Session) (*dto.UsageResponse, error)
	Improve(ctx context.Context, sess session.Session, req *dto.ImprovePromptRequest) (*dto.ImprovePromptResponse, error)
}

type studioService struct {
	tracker   *quota.Tracker
	cache     *contentcache.Cache
	generator imagegen.Generator
	engine    *prompt.Engine
	log       logger.ILogger
}

func NewStudioService(
	tracker *quota.Tracker,
	cache *contentcache.Cache,
	generator imagegen.Generator,
	engine *prompt.Engine,
	log logger.ILogger,
) IStudioService {
	return &studioService{
		tracker:   tracker,
		cache:     cache,
		generator: generator,
		engine:    engine,
		log:       log,
	}
}

// Generate runs the studio flow: quota pre-check, prompt validation, cache
// lookup, generation, quota increment, cache write. The increment happens
// even when generation fails so repeated failing calls cannot bypass the
// quota; legitimate transient failures still cost quota.
func (s *studioService) Generate(ctx context.Context, sess session.Session, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	metered := sess.Usable()

	usage := quota.Usage{Count: 0, Remaining: s.tracker.Limit()}
	if metered {
		var err error
		usage, err = s.tracker.Usage(ctx, sess.ID)
		if err != nil {
			// Fail open: an unreachable store must not deny generation.
			s.log.Warn("studio", "usage read degraded to zero", map[string]interface{}{
				"session": sess.ID,
				"error":   err.Error(),
			})
		}
		if usage.Remaining <= 0 {
			return nil, &dto.LimitExceededError{
				Limit:      s.tracker.Limit(),
				Used:       usage.Count,
				ResetAfter: time.Now().Add(quota.Window),
			}
		}
	}

	if err := prompt.Validate(req.Prompt); err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}

	digest := contentcache.Hash(req.Prompt)

	if !req.SkipCache {
		artifact, ok, err := s.cache.Get(ctx, digest)
		if err != nil {
			s.log.Warn("studio", "cache read degraded to miss", map[string]interface{}{
				"digest": digest,
				"error":  err.Error(),
			})
		}
		if ok {
			// Cache hits are free: no increment.
			return &dto.GenerateImageResponse{
				Success:   true,
				Image:     artifact,
				Cached:    true,
				Remaining: usage.Remaining,
			}, nil
		}
	}

	result, genErr := s.generator.Generate(ctx, req.Prompt, req.NegativePrompt)

	remaining := usage.Remaining
	if metered {
		inc, err := s.tracker.Increment(ctx, sess.ID)
		if err != nil {
			s.log.Warn("studio", "usage increment dropped", map[string]interface{}{
				"session": sess.ID,
				"error":   err.Error(),
			})
			remaining = usage.Remaining - 1
		} else {
			remaining = s.tracker.Limit() - inc.Count
		}
		if remaining < 0 {
			remaining = 0
		}
	}

	if genErr != nil {
		if errors.Is(genErr, imagegen.ErrMissingAPIKey) {
			return nil, serverutils.NewApiError(fiber.StatusUnauthorized, genErr.Error())
		}
		s.log.Error("studio", "image generation failed", map[string]interface{}{
			"session": sess.ID,
			"error":   genErr.Error(),
		})
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "could not generate image")
	}

	if result.Loading {
		return &dto.GenerateImageResponse{
			Success:    false,
			Loading:    true,
			RetryAfter: result.RetryAfter,
			Remaining:  remaining,
		}, nil
	}

	if err := s.cache.Put(ctx, digest, result.Image); err != nil {
		s.log.Warn("studio", "cache write dropped", map[string]interface{}{
			"digest": digest,
			"error":  err.Error(),
		})
	}

	return &dto.GenerateImageResponse{
		Success:   true,
		Image:     result.Image,
		Cached:    false,
		Remaining: remaining,
	}, nil
}

func (s *studioService) Usage(ctx context.Context, sess session.Session) (*dto.UsageResponse, error) {
	resp := &dto.UsageResponse{
		SessionId: sess.ID,
		Used:      0,
		Remaining: s.tracker.Limit(),
		Limit:     s.tracker.Limit(),
	}

	if !sess.Usable() {
		return resp, nil
	}

	usage, err := s.tracker.Usage(ctx, sess.ID)
	if err != nil {
		s.log.Warn("studio", "usage read degraded to zero", map[string]interface{}{
			"session": sess.ID,
			"error":   err.Error(),
		})
	}
	resp.Used = usage.Count
	resp.Remaining = usage.Remaining
	return resp, nil
}

func (s *studioService) Improve(ctx context.Context, sess session.Session, req *dto.ImprovePromptRequest) (*dto.ImprovePromptResponse, error) {
	if err := prompt.Validate(req.Idea); err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}

	improved, err := s.engine.Improve(ctx, req.Idea)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "could not process the idea")
	}

	return &dto.ImprovePromptResponse{
		Success:        true,
		SessionId:      sess.ID,
		Original:       improved.Original,
		Optimized:      improved.Optimized,
		NegativePrompt: improved.NegativePrompt,
	}, nil
}
