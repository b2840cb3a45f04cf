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

type ITemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	List(ctx context.Context, templateType string) ([]*dto.TemplateResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error)
}

type templateService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTemplateService(uowFactory unitofwork.RepositoryFactory) ITemplateService {
	return &templateService{uowFactory: uowFactory}
}

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.TemplateRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("template name already exists")
	}

	tpl := &entity.Template{
		Id:        uuid.New(),
		Name:      req.Name,
		Type:      req.Type,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.TemplateRepository().Create(ctx, tpl); err != nil {
		return nil, apperror.Internal(err)
	}
	return toTemplateResponse(tpl), nil
}

func (s *templateService) List(ctx context.Context, templateType string) ([]*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderBy{Field: "created_at", Desc: true}}
	if templateType != "" {
		specs = append(specs, specification.ByType{Type: templateType})
	}

	templates, err := uow.TemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]*dto.TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = toTemplateResponse(t)
	}
	return out, nil
}

func (s *templateService) Get(ctx context.Context, id uuid.UUID) (*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tpl, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if tpl == nil {
		return nil, apperror.NotFound("template not found")
	}
	return toTemplateResponse(tpl), nil
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		Id:        t.Id,
		Name:      t.Name,
		Type:      t.Type,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}
