package implementation

import (
	"context"

	"contractvault-be/internal/model"
	"contractvault-be/internal/repository"

	"gorm.io/gorm"
)

type SystemLogRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) repository.SystemLogRepository {
	return &SystemLogRepositoryImpl{db: db}
}

func (r *SystemLogRepositoryImpl) CreateLog(ctx context.Context, log *model.SystemLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *SystemLogRepositoryImpl) GetLogs(ctx context.Context, limit, offset int) ([]model.SystemLog, int64, error) {
	var logs []model.SystemLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.SystemLog{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error

	return logs, total, err
}
