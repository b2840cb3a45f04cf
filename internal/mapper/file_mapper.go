package mapper

import (
	"strconv"

	"gorm.io/datatypes"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"
)

// FileMapper converts between the numeric version keys used by the domain
// and the string keys JSONB columns come back with. Non-numeric keys are
// skipped rather than rejected so a hand-edited row cannot poison reads.
type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:              f.Id,
		Name:            f.Name,
		UserId:          f.UserId,
		OriginalVersion: entity.Content(f.OriginalVersion),
		EditVersions:    contentsByVersion(f.EditVersions),
		Summary:         valuesByVersion(f.Summary),
		Overview:        valuesByVersion(f.Overview),
		Recommendations: valuesByVersion(f.Recommendations),
		Analysis:        f.Analysis,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:              f.Id,
		Name:            f.Name,
		UserId:          f.UserId,
		OriginalVersion: datatypes.JSONMap(f.OriginalVersion),
		EditVersions:    contentsToJSONMap(f.EditVersions),
		Summary:         valuesToJSONMap(f.Summary),
		Overview:        valuesToJSONMap(f.Overview),
		Recommendations: valuesToJSONMap(f.Recommendations),
		Analysis:        f.Analysis,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.File) []*entity.File {
	entities := make([]*entity.File, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func contentsByVersion(jm datatypes.JSONMap) map[int]entity.Content {
	out := make(map[int]entity.Content, len(jm))
	for key, raw := range jm {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		content, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		out[n] = entity.Content(content)
	}
	return out
}

func valuesByVersion(jm datatypes.JSONMap) map[int]interface{} {
	out := make(map[int]interface{}, len(jm))
	for key, raw := range jm {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[n] = raw
	}
	return out
}

func contentsToJSONMap(versions map[int]entity.Content) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(versions))
	for n, content := range versions {
		out[strconv.Itoa(n)] = map[string]interface{}(content)
	}
	return out
}

func valuesToJSONMap(values map[int]interface{}) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(values))
	for n, v := range values {
		out[strconv.Itoa(n)] = v
	}
	return out
}
