package contract

import (
	"context"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, plan *entity.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error)

	// Change Requests
	CreateChangeRequest(ctx context.Context, req *entity.PlanChangeRequest) error
	UpdateChangeRequest(ctx context.Context, req *entity.PlanChangeRequest) error
	FindChangeRequest(ctx context.Context, specs ...specification.Specification) (*entity.PlanChangeRequest, error)
	FindChangeRequests(ctx context.Context, specs ...specification.Specification) ([]*entity.PlanChangeRequest, error)
}
