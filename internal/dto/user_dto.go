package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	Type           string     `json:"type"`
	JobTitle       string     `json:"job_title,omitempty"`
	BusinessName   string     `json:"business_name,omitempty"`
	BusinessSector string     `json:"business_sector,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	PlanId         *uuid.UUID `json:"plan_id,omitempty"`
	PlanName       string     `json:"plan_name,omitempty"`
	Credits        CreditsDTO `json:"credits"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreditsDTO reports how each allowance stands under the current plan.
// Percentages are consumed share, rounded down, 0 when the quota is 0.
type CreditsDTO struct {
	UploadsAllowed    int `json:"uploads_allowed"`
	UploadsRemaining  int `json:"uploads_remaining"`
	UploadsPercent    int `json:"uploads_percent"`
	RefinesAllowed    int `json:"refines_allowed"`
	RefinesRemaining  int `json:"refines_remaining"`
	RefinesPercent    int `json:"refines_percent"`
	AnalysesAllowed   int `json:"analyses_allowed"`
	AnalysesRemaining int `json:"analyses_remaining"`
	AnalysesPercent   int `json:"analyses_percent"`
	FilesUploaded     int `json:"files_uploaded"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name" validate:"omitempty,min=2"`
	JobTitle       string `json:"job_title" validate:"omitempty"`
	BusinessName   string `json:"business_name" validate:"omitempty"`
	BusinessSector string `json:"business_sector" validate:"omitempty"`
	Phone          string `json:"phone" validate:"omitempty"`
}
