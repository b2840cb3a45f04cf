package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const planCacheTTL = 10 * time.Minute

// IUsageService is the quota ledger: it answers "may this user consume
// one more X" and reports consumption under the current plan.
type IUsageService interface {
	GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageResponse, error)
	CheckUpload(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheckResponse, error)
	CheckAnalysis(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheckResponse, error)
	CheckRefine(ctx context.Context, userId uuid.UUID, requested int) (*dto.QuotaCheckResponse, error)

	// ResolvePlan returns the user's current plan, going through the
	// cache. PlanRequiredError when the user has none assigned.
	ResolvePlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.Plan, error)
	InvalidatePlanCache(ctx context.Context, planId uuid.UUID)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
		rdb:        rdb,
	}
}

func (s *usageService) GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.ResolvePlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	usage, err := uow.UsageRepository().Find(ctx, userId, plan.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	resp := &dto.UsageResponse{
		PlanId:   plan.Id,
		PlanName: plan.Name,
	}
	// Missing row means nothing consumed yet under this plan.
	if usage != nil {
		resp.UploadsUsed = usage.UploadsUsed
		resp.RefinesUsed = usage.RefinesUsed
		resp.AnalysesUsed = usage.AnalysesUsed
		resp.UpdatedAt = usage.UpdatedAt
	}
	return resp, nil
}

func (s *usageService) CheckUpload(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheckResponse, error) {
	return s.checkSingle(ctx, userId, func(plan *entity.Plan, usage *entity.UsageRecord) (int, int) {
		return usedOrZero(usage, func(u *entity.UsageRecord) int { return u.UploadsUsed }), plan.UploadsAllowed
	}, "upload")
}

func (s *usageService) CheckAnalysis(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheckResponse, error) {
	return s.checkSingle(ctx, userId, func(plan *entity.Plan, usage *entity.UsageRecord) (int, int) {
		return usedOrZero(usage, func(u *entity.UsageRecord) int { return u.AnalysesUsed }), plan.AnalysesAllowed
	}, "analysis")
}

func (s *usageService) CheckRefine(ctx context.Context, userId uuid.UUID, requested int) (*dto.QuotaCheckResponse, error) {
	if requested <= 0 {
		return nil, apperror.Validationf("possible_refines must be a positive number, got %d", requested)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.ResolvePlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	usage, err := uow.UsageRepository().Find(ctx, userId, plan.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	used := usedOrZero(usage, func(u *entity.UsageRecord) int { return u.RefinesUsed })
	decision := entity.CheckQuotaBatch(used, plan.RefinesAllowed, requested)

	resp := &dto.QuotaCheckResponse{
		Allowed:   decision.Allowed,
		Remaining: decision.Remaining,
	}
	if !decision.Allowed {
		resp.Message = fmt.Sprintf(
			"refine quota exceeded: quota %d, used %d, remaining %d, requested %d",
			plan.RefinesAllowed, used, decision.Remaining, requested,
		)
	}
	return resp, nil
}

func (s *usageService) checkSingle(
	ctx context.Context,
	userId uuid.UUID,
	extract func(*entity.Plan, *entity.UsageRecord) (used, allowed int),
	kind string,
) (*dto.QuotaCheckResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.ResolvePlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	usage, err := uow.UsageRepository().Find(ctx, userId, plan.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	used, allowed := extract(plan, usage)
	decision := entity.CheckQuota(used, allowed)

	resp := &dto.QuotaCheckResponse{
		Allowed:   decision.Allowed,
		Remaining: decision.Remaining,
	}
	if !decision.Allowed {
		resp.Message = fmt.Sprintf("%s quota exceeded: quota %d, used %d", kind, allowed, used)
	}
	return resp, nil
}

func (s *usageService) ResolvePlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.Plan, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	if user.PlanId == nil {
		return nil, apperror.PlanRequired()
	}

	if plan := s.planFromCache(ctx, *user.PlanId); plan != nil {
		return plan, nil
	}

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: *user.PlanId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if plan == nil {
		return nil, apperror.PlanRequired()
	}

	s.planToCache(ctx, plan)
	return plan, nil
}

func (s *usageService) InvalidatePlanCache(ctx context.Context, planId uuid.UUID) {
	if s.rdb == nil {
		return
	}
	s.rdb.Del(ctx, planCacheKey(planId))
}

func (s *usageService) planFromCache(ctx context.Context, planId uuid.UUID) *entity.Plan {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, planCacheKey(planId)).Bytes()
	if err != nil {
		return nil
	}
	var plan entity.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil
	}
	return &plan
}

func (s *usageService) planToCache(ctx context.Context, plan *entity.Plan) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return
	}
	s.rdb.Set(ctx, planCacheKey(plan.Id), raw, planCacheTTL)
}

func planCacheKey(planId uuid.UUID) string {
	return "plan:" + planId.String()
}

func usedOrZero(usage *entity.UsageRecord, field func(*entity.UsageRecord) int) int {
	if usage == nil {
		return 0
	}
	return field(usage)
}
