package controller

import (
	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/pkg/serverutils"
	"portfolio-cms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDiscoveryController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	SetTaxonomy(ctx *fiber.Ctx) error
	SetTags(ctx *fiber.Ctx) error
	ToggleTag(ctx *fiber.Ctx) error
	LoadMore(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type discoveryController struct {
	service service.IDiscoveryService
}

func NewDiscoveryController(service service.IDiscoveryService) IDiscoveryController {
	return &discoveryController{service: service}
}

func (c *discoveryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/discover/v1")
	h.Post("", c.Open)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Close)
	h.Put(":id/search", c.Search)
	h.Put(":id/taxonomy", c.SetTaxonomy)
	h.Put(":id/tags", c.SetTags)
	h.Post(":id/tags/toggle", c.ToggleTag)
	h.Post(":id/more", c.LoadMore)
}

func (c *discoveryController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenDiscoveryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Open(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Discovery opened", res))
}

func (c *discoveryController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show discovery", res))
}

func (c *discoveryController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search scheduled", res))
}

func (c *discoveryController) SetTaxonomy(ctx *fiber.Ctx) error {
	var req dto.TaxonomyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetTaxonomy(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Taxonomy applied", res))
}

func (c *discoveryController) SetTags(ctx *fiber.Ctx) error {
	var req dto.TagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")

	res, err := c.service.SetTags(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tags applied", res))
}

func (c *discoveryController) ToggleTag(ctx *fiber.Ctx) error {
	var req dto.ToggleTagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ToggleTag(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Tag toggled", res))
}

func (c *discoveryController) LoadMore(ctx *fiber.Ctx) error {
	res, err := c.service.LoadMore(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Loaded more", res))
}

func (c *discoveryController) Close(ctx *fiber.Ctx) error {
	if err := c.service.Close(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Discovery closed", nil))
}
