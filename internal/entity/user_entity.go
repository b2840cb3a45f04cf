package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserType string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserTypePerson   UserType = "person"
	UserTypeBusiness UserType = "business"
)

type User struct {
	Id             uuid.UUID
	Email          string
	PasswordHash   *string
	Name           string
	Role           UserRole
	Type           UserType
	JobTitle       *string
	BusinessName   *string
	BusinessSector *string
	Phone          *string
	// Provider is set when the account was created through an external
	// identity provider (e.g. "google").
	Provider  *string
	PlanId    *uuid.UUID // nullable until a plan is assigned
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PasswordResetOTP is a short-lived 6-digit code sent by email.
type PasswordResetOTP struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Code      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
