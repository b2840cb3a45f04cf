package model

import (
	"time"

	"github.com/google/uuid"
)

type Plan struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	UploadsAllowed  int       `gorm:"not null;default:0"`
	RefinesAllowed  int       `gorm:"not null;default:0"`
	AnalysesAllowed int       `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

// PlanChangeRequest rows are guarded by a partial unique index on
// (user_id) WHERE status = 'pending', created by cmd/migrate, so two
// concurrent submissions cannot both land as pending.
type PlanChangeRequest struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedPlanId uuid.UUID  `gorm:"type:uuid;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	DecisionAt      *time.Time
}

func (PlanChangeRequest) TableName() string {
	return "plan_change_requests"
}
