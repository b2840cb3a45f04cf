package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/mapper"
	"contractvault-be/internal/model"
	"contractvault-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UsageMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewUsageMapper(),
	}
}

func (r *UsageRepositoryImpl) Find(ctx context.Context, userId, planId uuid.UUID) (*entity.UsageRecord, error) {
	var m model.UsageRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_id = ?", userId, planId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UsageRepositoryImpl) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.UsageRecord, error) {
	var models []*model.UsageRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	records := make([]*entity.UsageRecord, len(models))
	for i, m := range models {
		records[i] = r.mapper.ToEntity(m)
	}
	return records, nil
}

// Increment relies on the (user_id, plan_id) unique index so concurrent
// requests serialize on the row instead of racing a read-modify-write.
func (r *UsageRepositoryImpl) Increment(ctx context.Context, userId, planId uuid.UUID, counter contract.UsageCounter, n int) error {
	m := &model.UsageRecord{
		UserId:    userId,
		PlanId:    planId,
		UpdatedAt: time.Now(),
	}
	switch counter {
	case contract.CounterUploads:
		m.UploadsUsed = n
	case contract.CounterRefines:
		m.RefinesUsed = n
	case contract.CounterAnalyses:
		m.AnalysesUsed = n
	default:
		return fmt.Errorf("unknown usage counter %q", counter)
	}

	column := string(counter)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "plan_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(fmt.Sprintf("usage_records.%s + ?", column), n),
			"updated_at": time.Now(),
		}),
	}).Create(m).Error
}
