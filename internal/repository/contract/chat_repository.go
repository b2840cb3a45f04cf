package contract

import (
	"context"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/repository/specification"
)

type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *entity.ChatMessage) error
	FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	CountMessages(ctx context.Context, specs ...specification.Specification) (int64, error)
}
