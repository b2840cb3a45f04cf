package contract

import (
	"context"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/repository/specification"
)

type TemplateRepository interface {
	Create(ctx context.Context, tpl *entity.Template) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error)
}
