package service

import (
	"context"
	"testing"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/repository"
	"contractvault-be/internal/repository/contract"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes so service paths (ownership, plan resolution, quota
// denial) can be exercised without a database.

type fakeFileRepo struct {
	files   map[uuid.UUID]*entity.File
	created int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[uuid.UUID]*entity.File{}}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *entity.File) error {
	r.files[file.Id] = file
	r.created++
	return nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *entity.File) error {
	r.files[file.Id] = file
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	for _, f := range r.files {
		if matchesFile(f, specs) {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	var out []*entity.File
	for _, f := range r.files {
		if matchesFile(f, specs) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	files, _ := r.FindAll(ctx, specs...)
	return int64(len(files)), nil
}

func matchesFile(f *entity.File, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if f.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if f.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

type fakeUsageRepo struct {
	records map[string]*entity.UsageRecord
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{records: map[string]*entity.UsageRecord{}}
}

func usageKey(userId, planId uuid.UUID) string {
	return userId.String() + "/" + planId.String()
}

func (r *fakeUsageRepo) Find(ctx context.Context, userId, planId uuid.UUID) (*entity.UsageRecord, error) {
	return r.records[usageKey(userId, planId)], nil
}

func (r *fakeUsageRepo) FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.UsageRecord, error) {
	var out []*entity.UsageRecord
	for _, rec := range r.records {
		if rec.UserId == userId {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeUsageRepo) Increment(ctx context.Context, userId, planId uuid.UUID, counter contract.UsageCounter, n int) error {
	key := usageKey(userId, planId)
	rec, ok := r.records[key]
	if !ok {
		rec = &entity.UsageRecord{Id: uuid.New(), UserId: userId, PlanId: planId}
		r.records[key] = rec
	}
	switch counter {
	case contract.CounterUploads:
		rec.UploadsUsed += n
	case contract.CounterRefines:
		rec.RefinesUsed += n
	case contract.CounterAnalyses:
		rec.AnalysesUsed += n
	}
	return nil
}

type fakeUow struct {
	fileRepo  *fakeFileRepo
	usageRepo *fakeUsageRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error { return nil }
func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return nil }
func (u *fakeUow) PlanRepository() contract.PlanRepository { return nil }
func (u *fakeUow) UsageRepository() contract.UsageRepository { return u.usageRepo }
func (u *fakeUow) FileRepository() contract.FileRepository { return u.fileRepo }
func (u *fakeUow) ChatRepository() contract.ChatRepository { return nil }
func (u *fakeUow) TemplateRepository() contract.TemplateRepository { return nil }
func (u *fakeUow) NotificationRepository() repository.NotificationRepository { return nil }
func (u *fakeUow) SystemLogRepository() repository.SystemLogRepository { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// stubUsageService resolves every user to the same plan, or denies plan
// resolution entirely when plan is nil.
type stubUsageService struct {
	plan *entity.Plan
}

func (s *stubUsageService) GetUsage(ctx context.Context, userId uuid.UUID) (*dto.UsageResponse, error) {
	return nil, nil
}

func (s *stubUsageService) CheckUpload(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheckResponse, error) {
	return nil, nil
}

func (s *stubUsageService) CheckAnalysis(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheckResponse, error) {
	return nil, nil
}

func (s *stubUsageService) CheckRefine(ctx context.Context, userId uuid.UUID, requested int) (*dto.QuotaCheckResponse, error) {
	return nil, nil
}

func (s *stubUsageService) ResolvePlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.Plan, error) {
	if s.plan == nil {
		return nil, apperror.PlanRequired()
	}
	return s.plan, nil
}

func (s *stubUsageService) InvalidatePlanCache(ctx context.Context, planId uuid.UUID) {}

type stubAudit struct{}

func (stubAudit) Record(ctx context.Context, actorId *uuid.UUID, action, msg string) {}
func (stubAudit) Consume(ctx context.Context) error { return nil }

func newTestFileService(plan *entity.Plan) (IFileService, *fakeUow) {
	uow := &fakeUow{fileRepo: newFakeFileRepo(), usageRepo: newFakeUsageRepo()}
	svc := NewFileService(&fakeFactory{uow: uow}, &stubUsageService{plan: plan}, nil, stubAudit{})
	return svc, uow
}

func testPlan(uploads, refines, analyses int) *entity.Plan {
	return &entity.Plan{Id: uuid.New(), Name: "Starter", UploadsAllowed: uploads, RefinesAllowed: refines, AnalysesAllowed: analyses}
}

func TestCreateRequiresPlan(t *testing.T) {
	svc, uow := newTestFileService(nil)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateFileRequest{
		FileName: "contract.json",
		JsonData: entity.Content{"clause": 1},
	})

	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindPlanRequired, appErr.Kind)
	assert.Zero(t, uow.fileRepo.created)
}

func TestCreateDeniedWhenQuotaConsumed(t *testing.T) {
	plan := testPlan(1, 5, 5)
	svc, uow := newTestFileService(plan)
	userId := uuid.New()

	_, err := svc.Create(context.Background(), userId, &dto.CreateFileRequest{
		FileName: "first.json",
		JsonData: entity.Content{"v": 1},
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userId, &dto.CreateFileRequest{
		FileName: "second.json",
		JsonData: entity.Content{"v": 2},
	})
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindQuotaExceeded, appErr.Kind)

	// The denied upload must not leave a row behind.
	assert.Equal(t, 1, uow.fileRepo.created)
	rec, _ := uow.usageRepo.Find(context.Background(), userId, plan.Id)
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.UploadsUsed)
}

func TestCreateDebitsUploadCounter(t *testing.T) {
	plan := testPlan(3, 5, 5)
	svc, uow := newTestFileService(plan)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateFileRequest{
		FileName: "contract.json",
		JsonData: entity.Content{"clause": "original"},
		Summary:  "initial summary",
	})
	require.NoError(t, err)
	assert.Equal(t, "contract.json", res.Name)

	rec, _ := uow.usageRepo.Find(context.Background(), userId, plan.Id)
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.UploadsUsed)
}

func TestReadsByNonOwnerReadAsMissing(t *testing.T) {
	svc, _ := newTestFileService(testPlan(5, 5, 5))
	owner := uuid.New()
	stranger := uuid.New()

	res, err := svc.Create(context.Background(), owner, &dto.CreateFileRequest{
		FileName: "private.json",
		JsonData: entity.Content{"secret": true},
	})
	require.NoError(t, err)

	_, err = svc.GetLatest(context.Background(), stranger, res.Id)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)

	// The owner still reaches it.
	latest, err := svc.GetLatest(context.Background(), owner, res.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, latest.Version)
}

func TestDeleteByNonOwnerLeavesFile(t *testing.T) {
	svc, uow := newTestFileService(testPlan(5, 5, 5))
	owner := uuid.New()
	stranger := uuid.New()

	res, err := svc.Create(context.Background(), owner, &dto.CreateFileRequest{
		FileName: "keep.json",
		JsonData: entity.Content{"v": 1},
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), stranger, res.Id)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Len(t, uow.fileRepo.files, 1)

	require.NoError(t, svc.Delete(context.Background(), owner, res.Id))
	assert.Empty(t, uow.fileRepo.files)
}

func TestAppendVersionRecordsRefines(t *testing.T) {
	plan := testPlan(5, 10, 5)
	svc, uow := newTestFileService(plan)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateFileRequest{
		FileName: "doc.json",
		JsonData: entity.Content{"v": 1},
		Summary:  "first summary",
	})
	require.NoError(t, err)

	appended, err := svc.AppendVersion(context.Background(), userId, res.Id, &dto.AppendVersionRequest{
		JsonData:        entity.Content{"v": 2},
		NumberOfRefines: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, appended.Version)
	assert.Equal(t, []int{1, 2}, appended.AllVersions)
	// The full map comes back, with the omitted summary carried forward.
	assert.Equal(t, map[string]interface{}{"1": "first summary", "2": "first summary"}, appended.Summary)
	assert.Equal(t, map[string]interface{}{"2": nil}, appended.Overview)

	rec, _ := uow.usageRepo.Find(context.Background(), userId, plan.Id)
	require.NotNil(t, rec)
	assert.Equal(t, 3, rec.RefinesUsed)
}

func TestGetVersionUnknownNumber(t *testing.T) {
	svc, _ := newTestFileService(testPlan(5, 5, 5))
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateFileRequest{
		FileName: "doc.json",
		JsonData: entity.Content{"v": 1},
	})
	require.NoError(t, err)

	_, err = svc.GetVersion(context.Background(), userId, res.Id, 7)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
}
