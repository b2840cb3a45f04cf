package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord counters are only ever mutated through a single upsert
// statement (see UsageRepository.Increment); the unique index on
// (user_id, plan_id) is its conflict target.
type UsageRecord struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_plan,priority:1"`
	PlanId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_plan,priority:2"`
	UploadsUsed  int       `gorm:"not null;default:0"`
	RefinesUsed  int       `gorm:"not null;default:0"`
	AnalysesUsed int       `gorm:"not null;default:0"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}
