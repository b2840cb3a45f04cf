package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemLog is the audit trail sink. Entries arrive asynchronously
// through the audit pipeline, so ActorId may be nil for system events.
type SystemLog struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Level     string     `gorm:"type:varchar(20);not null;index"`
	Module    *string    `gorm:"type:varchar(50)"`
	ActorId   *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(100);not null;index"`
	Message   string     `gorm:"type:text;not null"`
	Details   *string    `gorm:"type:jsonb"`
	CreatedAt time.Time  `gorm:"default:now();not null;index"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
