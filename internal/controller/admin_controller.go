package controller

import (
	"os"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Users(ctx *fiber.Ctx) error
	GetUser(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	Files(ctx *fiber.Ctx) error
	PendingRequests(ctx *fiber.Ctx) error
	DecideRequest(ctx *fiber.Ctx) error
	SystemLogs(ctx *fiber.Ctx) error
	AppLogs(ctx *fiber.Ctx) error

	CreatePlan(ctx *fiber.Ctx) error
	UpdatePlan(ctx *fiber.Ctx) error
	DeletePlan(ctx *fiber.Ctx) error

	CreateTemplate(ctx *fiber.Ctx) error
}

type adminController struct {
	service         service.IAdminService
	authService     service.IAuthService
	planService     service.IPlanService
	fileService     service.IFileService
	templateService service.ITemplateService
}

func NewAdminController(
	adminService service.IAdminService,
	authService service.IAuthService,
	planService service.IPlanService,
	fileService service.IFileService,
	templateService service.ITemplateService,
) IAdminController {
	return &adminController{
		service:         adminService,
		authService:     authService,
		planService:     planService,
		fileService:     fileService,
		templateService: templateService,
	}
}

// adminMiddleware verifies the bearer token and requires the admin role
// claim before any protected admin route runs.
func (c *adminController) adminMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing or invalid authorization header"))
	}
	tokenStr := authHeader[7:]

	secret := os.Getenv("JWT_SECRET")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}

	role, ok := claims["role"].(string)
	if !ok || role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	if userId, exists := claims["user_id"]; exists {
		ctx.Locals("user_id", userId)
	}

	return ctx.Next()
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	h.Post("/login", c.Login)

	h.Use(c.adminMiddleware)

	h.Get("/users", c.Users)
	h.Get("/users/:id", c.GetUser)
	h.Put("/users/:id", c.UpdateUser)
	h.Delete("/users/:id", c.DeleteUser)
	h.Get("/files", c.Files)

	h.Get("/change-requests", c.PendingRequests)
	h.Post("/change-requests/:id/decision", c.DecideRequest)

	h.Get("/logs", c.SystemLogs)
	h.Get("/logs/app", c.AppLogs)

	h.Post("/plans", c.CreatePlan)
	h.Put("/plans/:id", c.UpdatePlan)
	h.Delete("/plans/:id", c.DeletePlan)

	h.Post("/templates", c.CreateTemplate)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.AdminLogin(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) Users(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListUsers(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) GetUser(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetUser(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminUpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateUser(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update user", res))
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	userId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteUser(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete user", nil))
}

func (c *adminController) Files(ctx *fiber.Ctx) error {
	res, err := c.fileService.ListAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}

func (c *adminController) PendingRequests(ctx *fiber.Ctx) error {
	res, err := c.planService.PendingChangeRequests(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list pending requests", res))
}

func (c *adminController) DecideRequest(ctx *fiber.Ctx) error {
	adminIdStr, _ := ctx.Locals("user_id").(string)
	adminId, _ := uuid.Parse(adminIdStr)

	requestId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.DecideChangeRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.DecideChangeRequest(ctx.Context(), adminId, requestId, req.Action)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success decide change request", res))
}

func (c *adminController) SystemLogs(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.SystemLogs(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list system logs", res))
}

func (c *adminController) AppLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.AppLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success read application logs", res))
}

func (c *adminController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create plan", res))
}

func (c *adminController) UpdatePlan(ctx *fiber.Ctx) error {
	planId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.Update(ctx.Context(), planId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update plan", res))
}

func (c *adminController) DeletePlan(ctx *fiber.Ctx) error {
	planId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.planService.Delete(ctx.Context(), planId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete plan", nil))
}

func (c *adminController) CreateTemplate(ctx *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.templateService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create template", res))
}
