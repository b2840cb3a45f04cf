package repository

import (
	"context"

	"contractvault-be/internal/model"
)

type SystemLogRepository interface {
	CreateLog(ctx context.Context, log *model.SystemLog) error
	GetLogs(ctx context.Context, limit, offset int) ([]model.SystemLog, int64, error)
}
