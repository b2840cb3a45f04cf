package mapper

import (
	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.Template) *entity.Template {
	if t == nil {
		return nil
	}
	return &entity.Template{
		Id:        t.Id,
		Name:      t.Name,
		Type:      t.Type,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TemplateMapper) ToModel(t *entity.Template) *model.Template {
	if t == nil {
		return nil
	}
	return &model.Template{
		Id:        t.Id,
		Name:      t.Name,
		Type:      t.Type,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
	}
}

func (m *TemplateMapper) ToEntities(templates []*model.Template) []*entity.Template {
	entities := make([]*entity.Template, len(templates))
	for i, t := range templates {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
