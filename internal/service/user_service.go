package service

import (
	"context"
	"time"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
}

type userService struct {
	uowFactory   unitofwork.RepositoryFactory
	usageService IUsageService
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, usageService IUsageService) IUserService {
	return &userService{
		uowFactory:   uowFactory,
		usageService: usageService,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	resp := &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Type:      string(user.Type),
		PlanId:    user.PlanId,
		CreatedAt: user.CreatedAt,
	}
	fillOptional(&resp.JobTitle, user.JobTitle)
	fillOptional(&resp.BusinessName, user.BusinessName)
	fillOptional(&resp.BusinessSector, user.BusinessSector)
	fillOptional(&resp.Phone, user.Phone)

	// Profiles for users without a plan simply show zero credits.
	if user.PlanId != nil {
		plan, err := s.usageService.ResolvePlan(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		resp.PlanName = plan.Name

		usage, err := uow.UsageRepository().Find(ctx, userId, plan.Id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		fileCount, err := uow.FileRepository().Count(ctx, specification.OwnedBy{UserID: userId})
		if err != nil {
			return nil, apperror.Internal(err)
		}
		resp.Credits = creditsFor(plan, usage, int(fileCount))
	}

	return resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	setOptional(&user.JobTitle, req.JobTitle)
	setOptional(&user.BusinessName, req.BusinessName)
	setOptional(&user.BusinessSector, req.BusinessSector)
	setOptional(&user.Phone, req.Phone)
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func creditsFor(plan *entity.Plan, usage *entity.UsageRecord, fileCount int) dto.CreditsDTO {
	uploads, refines, analyses := 0, 0, 0
	if usage != nil {
		uploads = usage.UploadsUsed
		refines = usage.RefinesUsed
		analyses = usage.AnalysesUsed
	}
	return dto.CreditsDTO{
		UploadsAllowed:    plan.UploadsAllowed,
		UploadsRemaining:  entity.CheckQuota(uploads, plan.UploadsAllowed).Remaining,
		UploadsPercent:    usedPercent(uploads, plan.UploadsAllowed),
		RefinesAllowed:    plan.RefinesAllowed,
		RefinesRemaining:  entity.CheckQuota(refines, plan.RefinesAllowed).Remaining,
		RefinesPercent:    usedPercent(refines, plan.RefinesAllowed),
		AnalysesAllowed:   plan.AnalysesAllowed,
		AnalysesRemaining: entity.CheckQuota(analyses, plan.AnalysesAllowed).Remaining,
		AnalysesPercent:   usedPercent(analyses, plan.AnalysesAllowed),
		FilesUploaded:     fileCount,
	}
}

func usedPercent(used, allowed int) int {
	if allowed <= 0 {
		return 0
	}
	p := used * 100 / allowed
	if p > 100 {
		p = 100
	}
	return p
}

func fillOptional(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
