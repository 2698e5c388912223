package controller

import (
	"portfolio-cms-be/internal/dto"
	"portfolio-cms-be/internal/pkg/serverutils"
	"portfolio-cms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminListController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	SwitchKind(ctx *fiber.Ctx) error
	Sort(ctx *fiber.Ctx) error
	Filter(ctx *fiber.Ctx) error
	Page(ctx *fiber.Ctx) error
	ToggleSelect(ctx *fiber.Ctx) error
	SelectAll(ctx *fiber.Ctx) error
	ClearSelection(ctx *fiber.Ctx) error
	RunBulkAction(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type adminListController struct {
	service service.IAdminListService
}

func NewAdminListController(service service.IAdminListService) IAdminListController {
	return &adminListController{service: service}
}

func (c *adminListController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/list/v1")
	h.Post("", c.Open)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Close)
	h.Post(":id/refresh", c.Refresh)
	h.Put(":id/kind", c.SwitchKind)
	h.Put(":id/sort", c.Sort)
	h.Put(":id/filter", c.Filter)
	h.Put(":id/page", c.Page)
	h.Post(":id/select", c.ToggleSelect)
	h.Post(":id/select-all", c.SelectAll)
	h.Delete(":id/select", c.ClearSelection)
	h.Post(":id/bulk", c.RunBulkAction)
}

func (c *adminListController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenAdminListRequest
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
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Admin list opened", res))
}

func (c *adminListController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show admin list", res))
}

func (c *adminListController) Refresh(ctx *fiber.Ctx) error {
	res, err := c.service.Refresh(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin list refreshed", res))
}

func (c *adminListController) SwitchKind(ctx *fiber.Ctx) error {
	var req dto.SwitchKindRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SwitchKind(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Content kind switched", res))
}

func (c *adminListController) Sort(ctx *fiber.Ctx) error {
	var req dto.SortRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")

	res, err := c.service.Sort(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sort applied", res))
}

func (c *adminListController) Filter(ctx *fiber.Ctx) error {
	var req dto.FilterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")

	res, err := c.service.Filter(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Filter applied", res))
}

func (c *adminListController) Page(ctx *fiber.Ctx) error {
	var req dto.PageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Page(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Page changed", res))
}

func (c *adminListController) ToggleSelect(ctx *fiber.Ctx) error {
	var req dto.SelectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ToggleSelect(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection toggled", res))
}

func (c *adminListController) SelectAll(ctx *fiber.Ctx) error {
	var req dto.SelectAllRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SelectAll(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Records selected", res))
}

func (c *adminListController) ClearSelection(ctx *fiber.Ctx) error {
	res, err := c.service.ClearSelection(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection cleared", res))
}

func (c *adminListController) RunBulkAction(ctx *fiber.Ctx) error {
	var req dto.BulkActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.SessionId = ctx.Params("id")
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RunBulkAction(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bulk action finished", res))
}

func (c *adminListController) Close(ctx *fiber.Ctx) error {
	if err := c.service.Close(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Admin list closed", nil))
}
