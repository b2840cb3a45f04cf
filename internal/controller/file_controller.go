package controller

import (
	"contractvault-be/internal/dto"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Count(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	Versions(ctx *fiber.Ctx) error
	ShowVersion(ctx *fiber.Ctx) error
	AppendVersion(ctx *fiber.Ctx) error
	SetAnalysis(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService service.IFileService
}

func NewFileController(fileService service.IFileService) IFileController {
	return &fileController{
		fileService: fileService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get("count", c.Count)
	h.Get(":id", c.Show)
	h.Get(":id/latest", c.Latest)
	h.Get(":id/versions", c.Versions)
	h.Get(":id/versions/:version", c.ShowVersion)
	h.Post(":id/version", c.AppendVersion)
	h.Post(":id/analysis", c.SetAnalysis)
	h.Delete(":id", c.Delete)
}

func (c *fileController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateFileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.fileService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create file", res))
}

func (c *fileController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.fileService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}

func (c *fileController) Count(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	count, err := c.fileService.Count(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count files", fiber.Map{"count": count}))
}

func (c *fileController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.fileService.GetById(ctx.Context(), userId, fileId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get file", res))
}

func (c *fileController) Latest(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.fileService.GetLatest(ctx.Context(), userId, fileId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest version", res))
}

func (c *fileController) Versions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	versions, err := c.fileService.GetAllVersions(ctx.Context(), userId, fileId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list versions", fiber.Map{"versions": versions}))
}

func (c *fileController) ShowVersion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	version, err := ctx.ParamsInt("version")
	if err != nil || version < 1 {
		return apperror.Validation("version must be a positive integer")
	}

	res, err := c.fileService.GetVersion(ctx.Context(), userId, fileId, version)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get version", res))
}

func (c *fileController) AppendVersion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AppendVersionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.fileService.AppendVersion(ctx.Context(), userId, fileId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append version", res))
}

func (c *fileController) SetAnalysis(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SetAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.fileService.SetAnalysis(ctx.Context(), userId, fileId, req.Analysis); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success set analysis", nil))
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileId, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.fileService.Delete(ctx.Context(), userId, fileId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete file", nil))
}

func parseIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid id")
	}
	return id, nil
}
