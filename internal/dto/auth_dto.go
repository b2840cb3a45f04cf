package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name" validate:"required,min=2"`
	Type           string `json:"type" validate:"required,oneof=person business"`
	JobTitle       string `json:"job_title" validate:"omitempty"`
	BusinessName   string `json:"business_name" validate:"omitempty"`
	BusinessSector string `json:"business_sector" validate:"omitempty"`
	Phone          string `json:"phone" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type GoogleCallbackRequest struct {
	Code string `json:"code" validate:"required"`
}

type UserResponse struct {
	Id        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Type      string     `json:"type"`
	PlanId    *uuid.UUID `json:"plan_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
