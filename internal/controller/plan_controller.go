package controller

import (
	"contractvault-be/internal/dto"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	RequestChange(ctx *fiber.Ctx) error
	MyRequests(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plan/v1")
	// The catalogue is public so the pricing page works without a login.
	h.Get("", c.List)

	h.Use(serverutils.JwtMiddleware)
	h.Post("change-request", c.RequestChange)
	h.Get("change-requests", c.MyRequests)
}

func (c *planController) List(ctx *fiber.Ctx) error {
	res, err := c.planService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list plans", res))
}

func (c *planController) RequestChange(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateChangeRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.RequestChange(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create change request", res))
}

func (c *planController) MyRequests(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.planService.MyChangeRequests(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list change requests", res))
}
