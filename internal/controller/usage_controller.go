package controller

import (
	"contractvault-be/internal/dto"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router)
	Usage(ctx *fiber.Ctx) error
	CheckUpload(ctx *fiber.Ctx) error
	CheckAnalysis(ctx *fiber.Ctx) error
	CheckRefine(ctx *fiber.Ctx) error
}

type usageController struct {
	usageService service.IUsageService
}

func NewUsageController(usageService service.IUsageService) IUsageController {
	return &usageController{
		usageService: usageService,
	}
}

func (c *usageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/usage/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Usage)
	h.Get("uploads/check", c.CheckUpload)
	h.Get("analysis/check", c.CheckAnalysis)
	h.Post("refine/check", c.CheckRefine)
}

func (c *usageController) Usage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.usageService.GetUsage(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get usage", res))
}

func (c *usageController) CheckUpload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.usageService.CheckUpload(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check upload quota", res))
}

func (c *usageController) CheckAnalysis(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.usageService.CheckAnalysis(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check analysis quota", res))
}

func (c *usageController) CheckRefine(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RefineCheckRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.usageService.CheckRefine(ctx.Context(), userId, req.PossibleRefines)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check refine quota", res))
}
