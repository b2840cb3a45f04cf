package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/pkg/mailer"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"
	"contractvault-be/pkg/events"
	pkgNats "contractvault-be/pkg/nats"

	"github.com/google/uuid"
)

type IPlanService interface {
	List(ctx context.Context) ([]*dto.PlanResponse, error)
	Create(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	Update(ctx context.Context, planId uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	Delete(ctx context.Context, planId uuid.UUID) error

	RequestChange(ctx context.Context, userId uuid.UUID, req *dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error)
	MyChangeRequests(ctx context.Context, userId uuid.UUID) ([]*dto.ChangeRequestResponse, error)
	PendingChangeRequests(ctx context.Context) ([]*dto.AdminChangeRequestItem, error)
	DecideChangeRequest(ctx context.Context, adminId, requestId uuid.UUID, action string) (*dto.ChangeRequestResponse, error)
}

type planService struct {
	uowFactory     unitofwork.RepositoryFactory
	usageService   IUsageService
	emailService   mailer.IEmailService
	eventPublisher *pkgNats.Publisher
	audit          IAuditService
}

func NewPlanService(
	uowFactory unitofwork.RepositoryFactory,
	usageService IUsageService,
	emailService mailer.IEmailService,
	eventPublisher *pkgNats.Publisher,
	audit IAuditService,
) IPlanService {
	return &planService{
		uowFactory:     uowFactory,
		usageService:   usageService,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		audit:          audit,
	}
}

func (s *planService) List(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.PlanRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]*dto.PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = toPlanResponse(p)
	}
	return out, nil
}

func (s *planService) Create(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.PlanRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("plan name already exists")
	}

	plan := &entity.Plan{
		Id:              uuid.New(),
		Name:            req.Name,
		UploadsAllowed:  req.UploadsAllowed,
		RefinesAllowed:  req.RefinesAllowed,
		AnalysesAllowed: req.AnalysesAllowed,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := uow.PlanRepository().Create(ctx, plan); err != nil {
		return nil, apperror.Internal(err)
	}
	return toPlanResponse(plan), nil
}

func (s *planService) Update(ctx context.Context, planId uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if plan == nil {
		return nil, apperror.NotFound("plan not found")
	}

	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.UploadsAllowed != nil {
		plan.UploadsAllowed = *req.UploadsAllowed
	}
	if req.RefinesAllowed != nil {
		plan.RefinesAllowed = *req.RefinesAllowed
	}
	if req.AnalysesAllowed != nil {
		plan.AnalysesAllowed = *req.AnalysesAllowed
	}
	plan.UpdatedAt = time.Now()

	if err := uow.PlanRepository().Update(ctx, plan); err != nil {
		return nil, apperror.Internal(err)
	}

	// Quota checks must not keep serving the old limits.
	s.usageService.InvalidatePlanCache(ctx, plan.Id)

	return toPlanResponse(plan), nil
}

func (s *planService) Delete(ctx context.Context, planId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().Count(ctx, specification.Filter("plan_id", planId))
	if err != nil {
		return apperror.Internal(err)
	}
	if users > 0 {
		return apperror.Conflict("plan is still assigned to users")
	}

	if err := uow.PlanRepository().Delete(ctx, planId); err != nil {
		return apperror.Internal(err)
	}
	s.usageService.InvalidatePlanCache(ctx, planId)
	return nil
}

// RequestChange inserts the pending request inside a transaction; the
// partial unique index on (user_id) WHERE status='pending' makes the
// one-pending-per-user rule hold even under concurrent submissions.
func (s *planService) RequestChange(ctx context.Context, userId uuid.UUID, req *dto.CreateChangeRequestRequest) (*dto.ChangeRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: req.RequestedPlanId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if plan == nil {
		return nil, apperror.NotFound("plan not found")
	}

	pending, err := uow.PlanRepository().FindChangeRequest(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByStatus{Status: string(entity.RequestStatusPending)},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if pending != nil {
		return nil, apperror.Conflict("a pending plan change request already exists")
	}

	request := &entity.PlanChangeRequest{
		Id:              uuid.New(),
		UserId:          userId,
		RequestedPlanId: req.RequestedPlanId,
		Status:          entity.RequestStatusPending,
		CreatedAt:       time.Now(),
	}
	if err := uow.PlanRepository().CreateChangeRequest(ctx, request); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("a pending plan change request already exists")
		}
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("a pending plan change request already exists")
		}
		return nil, apperror.Internal(err)
	}

	if s.eventPublisher != nil {
		evt := events.New(events.TypePlanRequestCreated, map[string]interface{}{
			"request_id": request.Id,
			"user_id":    userId,
			"plan_id":    req.RequestedPlanId,
			"plan_name":  plan.Name,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PLAN_REQUEST_CREATED event: %v\n", err)
		}
	}
	s.audit.Record(ctx, &userId, "plan.request_change", fmt.Sprintf("requested plan %s", plan.Name))

	return toChangeRequestResponse(request), nil
}

func (s *planService) MyChangeRequests(ctx context.Context, userId uuid.UUID) ([]*dto.ChangeRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.PlanRepository().FindChangeRequests(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]*dto.ChangeRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = toChangeRequestResponse(r)
	}
	return out, nil
}

func (s *planService) PendingChangeRequests(ctx context.Context) ([]*dto.AdminChangeRequestItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.PlanRepository().FindChangeRequests(ctx,
		specification.ByStatus{Status: string(entity.RequestStatusPending)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]*dto.AdminChangeRequestItem, len(requests))
	for i, r := range requests {
		item := &dto.AdminChangeRequestItem{
			Id:              r.Id,
			UserId:          r.UserId,
			RequestedPlanId: r.RequestedPlanId,
			Status:          string(r.Status),
			CreatedAt:       r.CreatedAt,
			DecisionAt:      r.DecisionAt,
		}
		if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: r.UserId}); err == nil && user != nil {
			item.UserEmail = user.Email
		}
		if plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: r.RequestedPlanId}); err == nil && plan != nil {
			item.RequestedPlan = plan.Name
		}
		items[i] = item
	}
	return items, nil
}

// DecideChangeRequest finalizes a pending request. Approval switches the
// user's plan in the same transaction; terminal states are final.
func (s *planService) DecideChangeRequest(ctx context.Context, adminId, requestId uuid.UUID, action string) (*dto.ChangeRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	request, err := uow.PlanRepository().FindChangeRequest(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if request == nil {
		return nil, apperror.NotFound("plan change request not found")
	}
	if request.Status != entity.RequestStatusPending {
		return nil, apperror.Conflict("request has already been decided")
	}

	now := time.Now()
	request.DecisionAt = &now

	switch action {
	case "approve":
		request.Status = entity.RequestStatusApproved
		if err := uow.UserRepository().UpdatePlan(ctx, request.UserId, request.RequestedPlanId); err != nil {
			return nil, apperror.Internal(err)
		}
	case "reject":
		request.Status = entity.RequestStatusRejected
	default:
		return nil, apperror.Validation("action must be 'approve' or 'reject'")
	}

	if err := uow.PlanRepository().UpdateChangeRequest(ctx, request); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.notifyDecision(ctx, request)
	s.audit.Record(ctx, &adminId, "plan.decide_request",
		fmt.Sprintf("request %s %s", request.Id, request.Status))

	return toChangeRequestResponse(request), nil
}

func (s *planService) notifyDecision(ctx context.Context, request *entity.PlanChangeRequest) {
	if s.eventPublisher != nil {
		evt := events.New(events.TypePlanRequestDecided, map[string]interface{}{
			"request_id": request.Id,
			"user_id":    request.UserId,
			"plan_id":    request.RequestedPlanId,
			"status":     string(request.Status),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish PLAN_REQUEST_DECIDED event: %v\n", err)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: request.UserId})
	if err != nil || user == nil {
		return
	}
	planName := ""
	if plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: request.RequestedPlanId}); err == nil && plan != nil {
		planName = plan.Name
	}
	if err := s.emailService.SendPlanDecision(user.Email, planName, string(request.Status)); err != nil {
		fmt.Printf("[WARN] Failed to send plan decision email: %v\n", err)
	}
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		Id:              p.Id,
		Name:            p.Name,
		UploadsAllowed:  p.UploadsAllowed,
		RefinesAllowed:  p.RefinesAllowed,
		AnalysesAllowed: p.AnalysesAllowed,
		CreatedAt:       p.CreatedAt,
	}
}

func toChangeRequestResponse(r *entity.PlanChangeRequest) *dto.ChangeRequestResponse {
	return &dto.ChangeRequestResponse{
		Id:              r.Id,
		UserId:          r.UserId,
		RequestedPlanId: r.RequestedPlanId,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		DecisionAt:      r.DecisionAt,
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}
