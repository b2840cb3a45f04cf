package entity

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Plan is a subscription tier. The three quota fields are mutable by
// admins; the identity is not.
type Plan struct {
	Id              uuid.UUID
	Name            string
	UploadsAllowed  int
	RefinesAllowed  int
	AnalysesAllowed int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PlanChangeRequest moves pending -> approved|rejected. Terminal states
// are final; at most one pending request exists per user.
type PlanChangeRequest struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	RequestedPlanId uuid.UUID
	Status          RequestStatus
	CreatedAt       time.Time
	DecisionAt      *time.Time
}
