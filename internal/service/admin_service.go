package service

import (
	"context"
	"time"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/pkg/logger"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) (*dto.PaginatedResponse[dto.AdminUserListItem], error)
	GetUser(ctx context.Context, userId uuid.UUID) (*dto.AdminUserDetail, error)
	UpdateUser(ctx context.Context, userId uuid.UUID, req *dto.AdminUpdateUserRequest) (*dto.AdminUserDetail, error)
	DeleteUser(ctx context.Context, userId uuid.UUID) error
	SystemLogs(ctx context.Context, limit, offset int) (*dto.PaginatedResponse[dto.SystemLogItem], error)
	AppLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error)
}

type AdminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &AdminService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) (*dto.PaginatedResponse[dto.AdminUserListItem], error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]dto.AdminUserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.AdminUserListItem{
			Id:        u.Id,
			Email:     u.Email,
			Name:      u.Name,
			Role:      string(u.Role),
			Type:      string(u.Type),
			PlanId:    u.PlanId,
			CreatedAt: u.CreatedAt,
		})
	}

	return &dto.PaginatedResponse[dto.AdminUserListItem]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *AdminService) GetUser(ctx context.Context, userId uuid.UUID) (*dto.AdminUserDetail, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	return s.userDetail(ctx, uow, user)
}

func (s *AdminService) UpdateUser(ctx context.Context, userId uuid.UUID, req *dto.AdminUpdateUserRequest) (*dto.AdminUserDetail, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = entity.UserRole(req.Role)
	}
	if req.PlanId != nil {
		plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: *req.PlanId})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if plan == nil {
			return nil, apperror.NotFound("plan not found")
		}
		user.PlanId = req.PlanId
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	return s.userDetail(ctx, uow, user)
}

func (s *AdminService) DeleteUser(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return apperror.Validation("admin accounts cannot be deleted")
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *AdminService) userDetail(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User) (*dto.AdminUserDetail, error) {
	detail := &dto.AdminUserDetail{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Type:      string(user.Type),
		PlanId:    user.PlanId,
		CreatedAt: user.CreatedAt,
	}

	if user.PlanId != nil {
		plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: *user.PlanId})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if plan != nil {
			detail.PlanName = plan.Name
		}
	}

	files, err := uow.FileRepository().Count(ctx, specification.OwnedBy{UserID: user.Id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	detail.FilesUploaded = files

	return detail, nil
}

func (s *AdminService) SystemLogs(ctx context.Context, limit, offset int) (*dto.PaginatedResponse[dto.SystemLogItem], error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	logs, total, err := uow.SystemLogRepository().GetLogs(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]dto.SystemLogItem, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.SystemLogItem{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			ActorId:   l.ActorId,
			Action:    l.Action,
			Message:   l.Message,
			CreatedAt: l.CreatedAt,
		})
	}

	return &dto.PaginatedResponse[dto.SystemLogItem]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// AppLogs reads the structured application log file, not the audit
// trail. Useful for debugging without shell access to the host.
func (s *AdminService) AppLogs(ctx context.Context, level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}
