package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification stores the notification history pushed to users over the
// websocket channel. Rows are written by the event consumer, never by
// request handlers directly.
type Notification struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1"`
	TypeCode  string            `gorm:"type:varchar(50);not null;index"`
	Title     string            `gorm:"type:varchar(200);not null"`
	Message   string            `gorm:"type:text;not null"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	IsRead    bool              `gorm:"default:false"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_user_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}
