package mapper

import (
	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:              p.Id,
		Name:            p.Name,
		UploadsAllowed:  p.UploadsAllowed,
		RefinesAllowed:  p.RefinesAllowed,
		AnalysesAllowed: p.AnalysesAllowed,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *PlanMapper) ToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	return &model.Plan{
		Id:              p.Id,
		Name:            p.Name,
		UploadsAllowed:  p.UploadsAllowed,
		RefinesAllowed:  p.RefinesAllowed,
		AnalysesAllowed: p.AnalysesAllowed,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (m *PlanMapper) ToEntities(plans []*model.Plan) []*entity.Plan {
	entities := make([]*entity.Plan, len(plans))
	for i, p := range plans {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PlanMapper) ChangeRequestToEntity(r *model.PlanChangeRequest) *entity.PlanChangeRequest {
	if r == nil {
		return nil
	}
	return &entity.PlanChangeRequest{
		Id:              r.Id,
		UserId:          r.UserId,
		RequestedPlanId: r.RequestedPlanId,
		Status:          entity.RequestStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		DecisionAt:      r.DecisionAt,
	}
}

func (m *PlanMapper) ChangeRequestToModel(r *entity.PlanChangeRequest) *model.PlanChangeRequest {
	if r == nil {
		return nil
	}
	return &model.PlanChangeRequest{
		Id:              r.Id,
		UserId:          r.UserId,
		RequestedPlanId: r.RequestedPlanId,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		DecisionAt:      r.DecisionAt,
	}
}

func (m *PlanMapper) ChangeRequestsToEntities(reqs []*model.PlanChangeRequest) []*entity.PlanChangeRequest {
	entities := make([]*entity.PlanChangeRequest, len(reqs))
	for i, r := range reqs {
		entities[i] = m.ChangeRequestToEntity(r)
	}
	return entities
}
