package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId       uuid.UUID         `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Sender       string            `gorm:"type:varchar(10);not null"`
	Message      *string           `gorm:"type:text"`
	JsonResponse datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
