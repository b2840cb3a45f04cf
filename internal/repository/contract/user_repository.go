package contract

import (
	"context"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
	UpdatePlan(ctx context.Context, userId uuid.UUID, planId uuid.UUID) error

	// OTP Management
	CreatePasswordResetOTP(ctx context.Context, otp *entity.PasswordResetOTP) error
	FindPasswordResetOTP(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetOTP, error)
	MarkOTPUsed(ctx context.Context, id uuid.UUID) error
}
