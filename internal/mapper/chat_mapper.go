package mapper

import (
	"gorm.io/datatypes"

	"contractvault-be/internal/entity"
	"contractvault-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:           c.Id,
		ChatId:       c.ChatId,
		UserId:       c.UserId,
		Sender:       entity.ChatSender(c.Sender),
		Message:      c.Message,
		JsonResponse: map[string]interface{}(c.JsonResponse),
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:           c.Id,
		ChatId:       c.ChatId,
		UserId:       c.UserId,
		Sender:       string(c.Sender),
		Message:      c.Message,
		JsonResponse: datatypes.JSONMap(c.JsonResponse),
		CreatedAt:    c.CreatedAt,
	}
}

func (m *ChatMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, c := range msgs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
