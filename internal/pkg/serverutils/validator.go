package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"contractvault-be/internal/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and wraps failures so the
// error middleware renders them as a 400 with per-field messages.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Validation(err.Error())
	}
	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return apperror.Validation("Request validation failed").WithDetails(details)
}
