package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DecideChangeRequestRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

type AdminUpdateUserRequest struct {
	Name   string     `json:"name,omitempty"`
	Role   string     `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	PlanId *uuid.UUID `json:"plan_id,omitempty"`
}

type AdminUserDetail struct {
	Id            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Type          string     `json:"type"`
	PlanId        *uuid.UUID `json:"plan_id,omitempty"`
	PlanName      string     `json:"plan_name,omitempty"`
	FilesUploaded int64      `json:"files_uploaded"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AdminUserListItem struct {
	Id        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Type      string     `json:"type"`
	PlanId    *uuid.UUID `json:"plan_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type AdminChangeRequestItem struct {
	Id              uuid.UUID  `json:"id"`
	UserId          uuid.UUID  `json:"user_id"`
	UserEmail       string     `json:"user_email,omitempty"`
	RequestedPlanId uuid.UUID  `json:"requested_plan_id"`
	RequestedPlan   string     `json:"requested_plan,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	DecisionAt      *time.Time `json:"decision_at,omitempty"`
}

type SystemLogItem struct {
	Id        uuid.UUID  `json:"id"`
	Level     string     `json:"level"`
	Module    *string    `json:"module,omitempty"`
	ActorId   *uuid.UUID `json:"actor_id,omitempty"`
	Action    string     `json:"action"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"created_at"`
}

type PaginatedResponse[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type NotificationItem struct {
	Id        uuid.UUID              `json:"id"`
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}
