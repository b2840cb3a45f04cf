package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   *string    `gorm:"type:varchar(255)"`
	Name           string     `gorm:"type:varchar(255);not null"`
	Role           string     `gorm:"type:varchar(50);not null;default:'user'"`
	Type           string     `gorm:"type:varchar(50);not null;default:'person'"`
	JobTitle       *string    `gorm:"type:varchar(100)"`
	BusinessName   *string    `gorm:"type:varchar(100)"`
	BusinessSector *string    `gorm:"type:varchar(100)"`
	Phone          *string    `gorm:"type:varchar(50)"`
	Provider       *string    `gorm:"type:varchar(50)"`
	PlanId         *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type PasswordResetOTP struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(10);not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PasswordResetOTP) TableName() string {
	return "password_reset_otps"
}
