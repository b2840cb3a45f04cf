package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePlanRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	UploadsAllowed  int    `json:"uploads_allowed" validate:"gte=0"`
	RefinesAllowed  int    `json:"refines_allowed" validate:"gte=0"`
	AnalysesAllowed int    `json:"analyses_allowed" validate:"gte=0"`
}

type UpdatePlanRequest struct {
	Name            string `json:"name" validate:"omitempty,min=2"`
	UploadsAllowed  *int   `json:"uploads_allowed" validate:"omitempty,gte=0"`
	RefinesAllowed  *int   `json:"refines_allowed" validate:"omitempty,gte=0"`
	AnalysesAllowed *int   `json:"analyses_allowed" validate:"omitempty,gte=0"`
}

type PlanResponse struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	UploadsAllowed  int       `json:"uploads_allowed"`
	RefinesAllowed  int       `json:"refines_allowed"`
	AnalysesAllowed int       `json:"analyses_allowed"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateChangeRequestRequest struct {
	RequestedPlanId uuid.UUID `json:"requested_plan_id" validate:"required"`
}

type ChangeRequestResponse struct {
	Id              uuid.UUID  `json:"id"`
	UserId          uuid.UUID  `json:"user_id"`
	RequestedPlanId uuid.UUID  `json:"requested_plan_id"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	DecisionAt      *time.Time `json:"decision_at,omitempty"`
}
