package controller

import (
	"bazaarchat-be/internal/dto"
	"bazaarchat-be/internal/pkg/serverutils"
	"bazaarchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpsertGallery(ctx *fiber.Ctx) error
	UpsertSeller(ctx *fiber.Ctx) error
	UpsertProduct(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("stats", c.Stats)
	h.Get(":table", c.List)
	h.Get(":table/:id", c.Show)
	h.Delete(":table/:id", serverutils.JwtMiddleware, c.Delete)

	// Writes are admin-shaped and require a verified token.
	h.Post("galleries", serverutils.JwtMiddleware, c.UpsertGallery)
	h.Post("sellers", serverutils.JwtMiddleware, c.UpsertSeller)
	h.Post("products", serverutils.JwtMiddleware, c.UpsertProduct)
	h.Post("refresh", serverutils.JwtMiddleware, c.Refresh)
}

func (c *catalogController) List(ctx *fiber.Ctx) error {
	table := ctx.Params("table")

	res, err := c.catalogService.ListTable(ctx.Context(), table)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list "+table, res))
}

func (c *catalogController) Show(ctx *fiber.Ctx) error {
	table := ctx.Params("table")
	id := ctx.Params("id")

	res, err := c.catalogService.GetRecord(ctx.Context(), table, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show record", res))
}

func (c *catalogController) UpsertGallery(ctx *fiber.Ctx) error {
	var req dto.UpsertGalleryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.catalogService.UpsertGallery(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success upsert gallery", nil))
}

func (c *catalogController) UpsertSeller(ctx *fiber.Ctx) error {
	var req dto.UpsertSellerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.catalogService.UpsertSeller(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success upsert seller", nil))
}

func (c *catalogController) UpsertProduct(ctx *fiber.Ctx) error {
	var req dto.UpsertProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.catalogService.UpsertProduct(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success upsert product", nil))
}

func (c *catalogController) Delete(ctx *fiber.Ctx) error {
	table := ctx.Params("table")
	id := ctx.Params("id")

	if err := c.catalogService.DeleteRecord(ctx.Context(), table, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete record", nil))
}

func (c *catalogController) Refresh(ctx *fiber.Ctx) error {
	if err := c.catalogService.Refresh(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh catalog", c.catalogService.Stats()))
}

func (c *catalogController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", c.catalogService.Stats()))
}
