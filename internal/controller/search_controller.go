package controller

import (
	"nex-terminal-be/internal/dto"
	"nex-terminal-be/internal/pkg/serverutils"
	"nex-terminal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Detect(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Get("status", c.Status)
	h.Post("", c.Search)
	h.Put("detect", c.Detect)
}

func (c *searchController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(c.searchService.Status())
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *searchController) Detect(ctx *fiber.Ctx) error {
	var req dto.DetectSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(c.searchService.Detect(&req))
}
