package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Type    string `json:"type" validate:"required,min=2"`
	Content string `json:"content" validate:"required"`
}

type TemplateResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
