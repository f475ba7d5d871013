package controller

import (
	"nex-terminal-be/internal/dto"
	"nex-terminal-be/internal/pkg/serverutils"
	"nex-terminal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStudioController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Usage(ctx *fiber.Ctx) error
	Improve(ctx *fiber.Ctx) error
}

type studioController struct {
	studioService service.IStudioService
}

func NewStudioController(studioService service.IStudioService) IStudioController {
	return &studioController{
		studioService: studioService,
	}
}

func (c *studioController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/studio/v1")
	h.Post("generate", c.Generate)
	h.Get("usage", c.Usage)
	h.Post("improve", c.Improve)
}

func (c *studioController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.CurrentSession(ctx)

	res, err := c.studioService.Generate(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}

	// Model warm-up is a retryable signal, not a completed generation.
	if res.Loading {
		return ctx.Status(fiber.StatusAccepted).JSON(res)
	}

	return ctx.JSON(res)
}

func (c *studioController) Usage(ctx *fiber.Ctx) error {
	sess := serverutils.CurrentSession(ctx)

	res, err := c.studioService.Usage(ctx.Context(), sess)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *studioController) Improve(ctx *fiber.Ctx) error {
	var req dto.ImprovePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.CurrentSession(ctx)

	res, err := c.studioService.Improve(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
