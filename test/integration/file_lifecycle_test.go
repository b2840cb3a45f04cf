package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"contractvault-be/internal/bootstrap"
	"contractvault-be/internal/config"
	"contractvault-be/internal/dto"
	"contractvault-be/internal/model"
	"contractvault-be/internal/pkg/serverutils"
	"contractvault-be/internal/server"
	"contractvault-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "integration_secret")
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err, "Failed to connect to DB")

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	return srv.GetApp(), db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) serverutils.ApiResponse[T] {
	t.Helper()
	var out serverutils.ApiResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestFileLifecycle(t *testing.T) {
	app, db := setupApp(t)

	// Plan with room for two uploads so the third create hits the quota.
	plan := model.Plan{Name: "it-plan-" + uuid.NewString()[:8], UploadsAllowed: 2, RefinesAllowed: 5, AnalysesAllowed: 2}
	require.NoError(t, db.Create(&plan).Error)
	defer db.Delete(&model.Plan{}, plan.Id)

	email := fmt.Sprintf("it-%s@example.com", uuid.NewString()[:8])
	registerRes := decode[dto.AuthResponse](t, doJSON(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Password: "password123",
		Name:     "Integration User",
		Type:     "person",
	}))
	require.True(t, registerRes.Success)
	userId := registerRes.Data.User.Id
	token := registerRes.Data.Token
	require.NotEmpty(t, token)
	defer db.Delete(&model.User{}, userId)
	defer db.Where("user_id = ?", userId).Delete(&model.File{})
	defer db.Where("user_id = ?", userId).Delete(&model.UsageRecord{})

	// Assign the plan directly; plan changes normally go through admin review.
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", userId).Update("plan_id", plan.Id).Error)

	var fileId uuid.UUID

	t.Run("Create file consumes an upload", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/file/v1", token, dto.CreateFileRequest{
			FileName: "nda.json",
			JsonData: map[string]interface{}{"title": "NDA", "body": "original"},
			Summary:  "first summary",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		res := decode[dto.FileResponse](t, resp)
		require.True(t, res.Success)
		fileId = res.Data.Id

		var usage model.UsageRecord
		require.NoError(t, db.Where("user_id = ? AND plan_id = ?", userId, plan.Id).First(&usage).Error)
		assert.Equal(t, 1, usage.UploadsUsed)
	})

	t.Run("Append version and read latest", func(t *testing.T) {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/api/file/v1/%s/version", fileId), token, dto.AppendVersionRequest{
			JsonData:        map[string]interface{}{"title": "NDA", "body": "edited"},
			NumberOfRefines: 2,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		res := decode[dto.AppendVersionResponse](t, resp)
		assert.Equal(t, 2, res.Data.Version)
		assert.Equal(t, []int{1, 2}, res.Data.AllVersions)
		// Summary was omitted, so version 2 inherits version 1's value,
		// and the response carries the whole map.
		assert.Equal(t, "first summary", res.Data.Summary["1"])
		assert.Equal(t, "first summary", res.Data.Summary["2"])

		latest := decode[dto.VersionResponse](t, doJSON(t, app, "GET", fmt.Sprintf("/api/file/v1/%s/latest", fileId), token, nil))
		assert.Equal(t, 2, latest.Data.Version)
		assert.Equal(t, "edited", latest.Data.Content["body"])

		var usage model.UsageRecord
		require.NoError(t, db.Where("user_id = ? AND plan_id = ?", userId, plan.Id).First(&usage).Error)
		assert.Equal(t, 2, usage.RefinesUsed)
	})

	t.Run("Version one stays immutable", func(t *testing.T) {
		res := decode[dto.VersionResponse](t, doJSON(t, app, "GET", fmt.Sprintf("/api/file/v1/%s/versions/1", fileId), token, nil))
		assert.Equal(t, 1, res.Data.Version)
		assert.Equal(t, "original", res.Data.Content["body"])
	})

	t.Run("Upload quota is enforced in the create transaction", func(t *testing.T) {
		second := doJSON(t, app, "POST", "/api/file/v1", token, dto.CreateFileRequest{
			FileName: "second.json",
			JsonData: map[string]interface{}{"n": 2},
		})
		assert.Equal(t, fiber.StatusCreated, second.StatusCode)

		third := doJSON(t, app, "POST", "/api/file/v1", token, dto.CreateFileRequest{
			FileName: "third.json",
			JsonData: map[string]interface{}{"n": 3},
		})
		assert.Equal(t, fiber.StatusForbidden, third.StatusCode)

		// The denied upload must not leave a row behind.
		var count int64
		db.Model(&model.File{}).Where("user_id = ?", userId).Count(&count)
		assert.EqualValues(t, 2, count)
	})

	t.Run("Quota check endpoints", func(t *testing.T) {
		uploads := decode[dto.QuotaCheckResponse](t, doJSON(t, app, "GET", "/api/usage/v1/uploads/check", token, nil))
		assert.False(t, uploads.Data.Allowed)
		assert.Equal(t, 0, uploads.Data.Remaining)

		refine := decode[dto.QuotaCheckResponse](t, doJSON(t, app, "POST", "/api/usage/v1/refine/check", token, dto.RefineCheckRequest{PossibleRefines: 3}))
		assert.True(t, refine.Data.Allowed)
		assert.Equal(t, 0, refine.Data.Remaining)

		tooMany := decode[dto.QuotaCheckResponse](t, doJSON(t, app, "POST", "/api/usage/v1/refine/check", token, dto.RefineCheckRequest{PossibleRefines: 4}))
		assert.False(t, tooMany.Data.Allowed)
		assert.Equal(t, 3, tooMany.Data.Remaining)
	})

	t.Run("Delete requires ownership", func(t *testing.T) {
		otherRes := decode[dto.AuthResponse](t, doJSON(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
			Email:    fmt.Sprintf("it-other-%s@example.com", uuid.NewString()[:8]),
			Password: "password123",
			Name:     "Other User",
			Type:     "person",
		}))
		otherToken := otherRes.Data.Token
		defer db.Delete(&model.User{}, otherRes.Data.User.Id)

		resp := doJSON(t, app, "DELETE", fmt.Sprintf("/api/file/v1/%s", fileId), otherToken, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "foreign delete should look like a missing file")

		resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/file/v1/%s", fileId), token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp = doJSON(t, app, "GET", fmt.Sprintf("/api/file/v1/%s/latest", fileId), token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestPlanChangeRequestFlow(t *testing.T) {
	app, db := setupApp(t)

	planA := model.Plan{Name: "it-a-" + uuid.NewString()[:8], UploadsAllowed: 1}
	planB := model.Plan{Name: "it-b-" + uuid.NewString()[:8], UploadsAllowed: 10}
	require.NoError(t, db.Create(&planA).Error)
	require.NoError(t, db.Create(&planB).Error)
	defer db.Delete(&model.Plan{}, planA.Id)
	defer db.Delete(&model.Plan{}, planB.Id)

	registerRes := decode[dto.AuthResponse](t, doJSON(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Email:    fmt.Sprintf("it-plan-%s@example.com", uuid.NewString()[:8]),
		Password: "password123",
		Name:     "Plan User",
		Type:     "business",
	}))
	userId := registerRes.Data.User.Id
	token := registerRes.Data.Token
	defer db.Delete(&model.User{}, userId)
	defer db.Where("user_id = ?", userId).Delete(&model.PlanChangeRequest{})

	resp := doJSON(t, app, "POST", "/api/plan/v1/change-request", token, dto.CreateChangeRequestRequest{
		RequestedPlanId: planB.Id,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A second request while one is pending must be rejected.
	resp = doJSON(t, app, "POST", "/api/plan/v1/change-request", token, dto.CreateChangeRequestRequest{
		RequestedPlanId: planA.Id,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	mine := decode[[]dto.ChangeRequestResponse](t, doJSON(t, app, "GET", "/api/plan/v1/change-requests", token, nil))
	require.Len(t, mine.Data, 1)
	assert.Equal(t, "pending", mine.Data[0].Status)
}
