package serverutils

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"

	"contractvault-be/internal/pkg/apperror"
)

// ErrorHandlerMiddleware turns errors bubbling out of handlers into the
// standard response envelope. Internal error causes are only echoed back
// in development mode.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			status := appErr.HTTPStatus()
			body := ApiResponse[map[string]interface{}]{
				Success: false,
				Code:    status,
				Message: appErr.Message,
				Data:    appErr.Details,
			}
			if appErr.Kind == apperror.KindInternal && isDevelopment() && appErr.Err != nil {
				if body.Data == nil {
					body.Data = map[string]interface{}{}
				}
				body.Data["cause"] = appErr.Err.Error()
			}
			return ctx.Status(status).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		msg := "Internal server error"
		if isDevelopment() {
			msg = err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, msg))
	}
}

func isDevelopment() bool {
	return os.Getenv("GO_ENV") == "development"
}
