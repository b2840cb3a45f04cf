package dto

import (
	"time"

	"github.com/google/uuid"
)

// QuotaCheckResponse is returned by the limit-check endpoints.
type QuotaCheckResponse struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message,omitempty"`
}

type RefineCheckRequest struct {
	PossibleRefines int `json:"possible_refines" validate:"required,gt=0"`
}

type UsageResponse struct {
	PlanId       uuid.UUID `json:"plan_id"`
	PlanName     string    `json:"plan_name,omitempty"`
	UploadsUsed  int       `json:"uploads_used"`
	RefinesUsed  int       `json:"refines_used"`
	AnalysesUsed int       `json:"analyses_used"`
	UpdatedAt    time.Time `json:"updated_at"`
}
