package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/repository/contract"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"
	"contractvault-be/pkg/events"
	pkgNats "contractvault-be/pkg/nats"

	"github.com/google/uuid"
)

type IFileService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFileRequest) (*dto.FileResponse, error)
	AppendVersion(ctx context.Context, userId, fileId uuid.UUID, req *dto.AppendVersionRequest) (*dto.AppendVersionResponse, error)
	GetVersion(ctx context.Context, userId, fileId uuid.UUID, version int) (*dto.VersionResponse, error)
	GetLatest(ctx context.Context, userId, fileId uuid.UUID) (*dto.VersionResponse, error)
	GetAllVersions(ctx context.Context, userId, fileId uuid.UUID) ([]int, error)
	GetById(ctx context.Context, userId, fileId uuid.UUID) (*dto.FileResponse, error)
	SetAnalysis(ctx context.Context, userId, fileId uuid.UUID, analysis string) error
	Delete(ctx context.Context, userId, fileId uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID) ([]*dto.FileListItem, error)
	Count(ctx context.Context, userId uuid.UUID) (int64, error)
	ListAll(ctx context.Context) ([]*dto.FileListItem, error)
}

type fileService struct {
	uowFactory     unitofwork.RepositoryFactory
	usageService   IUsageService
	eventPublisher *pkgNats.Publisher
	audit          IAuditService
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	usageService IUsageService,
	eventPublisher *pkgNats.Publisher,
	audit IAuditService,
) IFileService {
	return &fileService{
		uowFactory:     uowFactory,
		usageService:   usageService,
		eventPublisher: eventPublisher,
		audit:          audit,
	}
}

// Create inserts the document and debits the upload counter in one
// transaction, so a failed quota check leaves no orphan row behind.
func (s *fileService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFileRequest) (*dto.FileResponse, error) {
	if req.FileName == "" {
		return nil, apperror.Validation("fileName is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	plan, err := s.usageService.ResolvePlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	usage, err := uow.UsageRepository().Find(ctx, userId, plan.Id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	used := 0
	if usage != nil {
		used = usage.UploadsUsed
	}
	if decision := entity.CheckQuota(used, plan.UploadsAllowed); !decision.Allowed {
		return nil, apperror.QuotaExceededf("upload quota exceeded: quota %d, used %d", plan.UploadsAllowed, used)
	}

	file := entity.NewFile(userId, req.FileName, req.JsonData, req.Summary, req.Overview, req.Recommendations)
	if err := uow.FileRepository().Create(ctx, file); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uow.UsageRepository().Increment(ctx, userId, plan.Id, contract.CounterUploads, 1); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	if s.eventPublisher != nil {
		evt := events.New(events.TypeFileUploaded, map[string]interface{}{
			"file_id":   file.Id,
			"user_id":   userId,
			"file_name": file.Name,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish FILE_UPLOADED event: %v\n", err)
		}
	}
	s.audit.Record(ctx, &userId, "file.create", fmt.Sprintf("file %s created", file.Id))

	return &dto.FileResponse{
		Id:              file.Id,
		Name:            file.Name,
		OriginalVersion: file.OriginalVersion,
		CreatedAt:       file.CreatedAt,
		UpdatedAt:       file.UpdatedAt,
	}, nil
}

func (s *fileService) AppendVersion(ctx context.Context, userId, fileId uuid.UUID, req *dto.AppendVersionRequest) (*dto.AppendVersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(err)
	}
	defer uow.Rollback()

	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return nil, err
	}

	version := file.AppendVersion(req.JsonData, req.Summary, req.Overview, req.Recommendations)
	if err := uow.FileRepository().Update(ctx, file); err != nil {
		return nil, apperror.Internal(err)
	}

	if req.NumberOfRefines > 0 {
		plan, err := s.usageService.ResolvePlan(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		if err := uow.UsageRepository().Increment(ctx, userId, plan.Id, contract.CounterRefines, req.NumberOfRefines); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(err)
	}

	s.audit.Record(ctx, &userId, "file.append_version", fmt.Sprintf("file %s version %d", file.Id, version))

	return &dto.AppendVersionResponse{
		Version:         version,
		AllVersions:     file.VersionNumbers(),
		Summary:         annotationsByVersion(file.Summary),
		Overview:        annotationsByVersion(file.Overview),
		Recommendations: annotationsByVersion(file.Recommendations),
	}, nil
}

func (s *fileService) GetVersion(ctx context.Context, userId, fileId uuid.UUID, version int) (*dto.VersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return nil, err
	}

	v, err := file.Version(version)
	if err != nil {
		if errors.Is(err, entity.ErrVersionNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("version %d not found", version))
		}
		return nil, apperror.Internal(err)
	}

	return versionResponse(file, v), nil
}

func (s *fileService) GetLatest(ctx context.Context, userId, fileId uuid.UUID) (*dto.VersionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return nil, err
	}
	return versionResponse(file, file.LatestVersion()), nil
}

func (s *fileService) GetAllVersions(ctx context.Context, userId, fileId uuid.UUID) ([]int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return nil, err
	}
	return file.VersionNumbers(), nil
}

func (s *fileService) GetById(ctx context.Context, userId, fileId uuid.UUID) (*dto.FileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return nil, err
	}

	return &dto.FileResponse{
		Id:              file.Id,
		Name:            file.Name,
		OriginalVersion: file.OriginalVersion,
		Analysis:        file.Analysis,
		CreatedAt:       file.CreatedAt,
		UpdatedAt:       file.UpdatedAt,
	}, nil
}

func (s *fileService) SetAnalysis(ctx context.Context, userId, fileId uuid.UUID, analysis string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Internal(err)
	}
	defer uow.Rollback()

	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return err
	}

	file.Analysis = &analysis
	file.UpdatedAt = time.Now()
	if err := uow.FileRepository().Update(ctx, file); err != nil {
		return apperror.Internal(err)
	}

	plan, err := s.usageService.ResolvePlan(ctx, uow, userId)
	if err != nil {
		return err
	}
	if err := uow.UsageRepository().Increment(ctx, userId, plan.Id, contract.CounterAnalyses, 1); err != nil {
		return apperror.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.Internal(err)
	}

	s.audit.Record(ctx, &userId, "file.set_analysis", fmt.Sprintf("file %s analysis updated", file.Id))
	return nil
}

// Delete requires the caller to own the file. A mismatch reads the same
// as a missing file so existence is not leaked.
func (s *fileService) Delete(ctx context.Context, userId, fileId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	file, err := s.findOwned(ctx, uow, userId, fileId)
	if err != nil {
		return err
	}

	if err := uow.FileRepository().Delete(ctx, file.Id); err != nil {
		return apperror.Internal(err)
	}

	s.audit.Record(ctx, &userId, "file.delete", fmt.Sprintf("file %s deleted", file.Id))
	return nil
}

func (s *fileService) List(ctx context.Context, userId uuid.UUID) ([]*dto.FileListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return fileListItems(files, false), nil
}

func (s *fileService) Count(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.FileRepository().Count(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (s *fileService) ListAll(ctx context.Context) ([]*dto.FileListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx,
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return fileListItems(files, true), nil
}

func (s *fileService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, fileId uuid.UUID) (*entity.File, error) {
	file, err := uow.FileRepository().FindOne(ctx,
		specification.ByID{ID: fileId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if file == nil {
		return nil, apperror.NotFound("File not found or unauthorized")
	}
	return file, nil
}

// annotationsByVersion re-keys an annotation map with string version
// numbers for the JSON boundary.
func annotationsByVersion(m map[int]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for version, value := range m {
		out[strconv.Itoa(version)] = value
	}
	return out
}

func versionResponse(file *entity.File, v *entity.FileVersion) *dto.VersionResponse {
	return &dto.VersionResponse{
		Version:         v.Number,
		Content:         v.Data,
		Summary:         v.Summary,
		Overview:        v.Overview,
		Recommendations: v.Recommendations,
		AllVersions:     file.VersionNumbers(),
	}
}

func fileListItems(files []*entity.File, includeOwner bool) []*dto.FileListItem {
	items := make([]*dto.FileListItem, len(files))
	for i, f := range files {
		item := &dto.FileListItem{
			Id:           f.Id,
			Name:         f.Name,
			VersionCount: f.VersionCount(),
			CreatedAt:    f.CreatedAt,
			UpdatedAt:    f.UpdatedAt,
		}
		if includeOwner {
			item.UserId = f.UserId
		}
		items[i] = item
	}
	return items
}
