package mapper

import (
	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"
)

type UsageMapper struct{}

func NewUsageMapper() *UsageMapper {
	return &UsageMapper{}
}

func (m *UsageMapper) ToEntity(u *model.UsageRecord) *entity.UsageRecord {
	if u == nil {
		return nil
	}
	return &entity.UsageRecord{
		Id:           u.Id,
		UserId:       u.UserId,
		PlanId:       u.PlanId,
		UploadsUsed:  u.UploadsUsed,
		RefinesUsed:  u.RefinesUsed,
		AnalysesUsed: u.AnalysesUsed,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UsageMapper) ToModel(u *entity.UsageRecord) *model.UsageRecord {
	if u == nil {
		return nil
	}
	return &model.UsageRecord{
		Id:           u.Id,
		UserId:       u.UserId,
		PlanId:       u.PlanId,
		UploadsUsed:  u.UploadsUsed,
		RefinesUsed:  u.RefinesUsed,
		AnalysesUsed: u.AnalysesUsed,
		UpdatedAt:    u.UpdatedAt,
	}
}
