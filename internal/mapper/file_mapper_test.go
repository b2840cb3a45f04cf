package mapper

import (
	"testing"
	"time"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestFileMapperSkipsNonNumericKeys(t *testing.T) {
	m := NewFileMapper()

	row := &model.File{
		Id:     uuid.New(),
		Name:   "c.json",
		UserId: uuid.New(),
		EditVersions: datatypes.JSONMap{
			"2":      map[string]interface{}{"body": "v2"},
			"latest": map[string]interface{}{"body": "junk"},
			"":       map[string]interface{}{"body": "junk"},
		},
		Summary: datatypes.JSONMap{
			"2":    "s2",
			"meta": "junk",
		},
	}

	f := m.ToEntity(row)
	require.NotNil(t, f)

	assert.Len(t, f.EditVersions, 1)
	assert.Equal(t, "v2", f.EditVersions[2]["body"])

	assert.Len(t, f.Summary, 1)
	assert.Equal(t, "s2", f.Summary[2])
}

func TestFileMapperSkipsNonObjectVersions(t *testing.T) {
	m := NewFileMapper()

	row := &model.File{
		EditVersions: datatypes.JSONMap{
			"2": "not an object",
			"3": map[string]interface{}{"body": "v3"},
		},
	}

	f := m.ToEntity(row)
	assert.Len(t, f.EditVersions, 1)
	assert.Contains(t, f.EditVersions, 3)
}

func TestFileMapperRoundTrip(t *testing.T) {
	m := NewFileMapper()

	analysis := "risk analysis text"
	src := &entity.File{
		Id:              uuid.New(),
		Name:            "nda.json",
		UserId:          uuid.New(),
		OriginalVersion: entity.Content{"title": "NDA"},
		EditVersions: map[int]entity.Content{
			2: {"title": "NDA v2"},
			3: {"title": "NDA v3"},
		},
		Summary:         map[int]interface{}{1: "s1", 2: "s2", 3: "s3"},
		Overview:        map[int]interface{}{1: nil, 2: "o2", 3: "o3"},
		Recommendations: map[int]interface{}{},
		Analysis:        &analysis,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	got := m.ToEntity(m.ToModel(src))

	assert.Equal(t, src.Id, got.Id)
	assert.Equal(t, src.Name, got.Name)
	assert.Equal(t, src.UserId, got.UserId)
	assert.Equal(t, src.OriginalVersion, got.OriginalVersion)
	assert.Equal(t, src.EditVersions, got.EditVersions)
	assert.Equal(t, src.Summary, got.Summary)
	assert.Equal(t, src.Overview, got.Overview)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, analysis, *got.Analysis)

	// The entity view of the round-tripped file still resolves versions.
	assert.Equal(t, []int{1, 2, 3}, got.VersionNumbers())
	assert.Equal(t, 4, got.NextVersion())
}

func TestFileMapperToModelUsesStringKeys(t *testing.T) {
	m := NewFileMapper()

	src := &entity.File{
		EditVersions: map[int]entity.Content{12: {"body": "v12"}},
		Summary:      map[int]interface{}{12: "s12"},
	}

	row := m.ToModel(src)
	assert.Contains(t, row.EditVersions, "12")
	assert.Contains(t, row.Summary, "12")
}
