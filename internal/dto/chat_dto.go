package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartChatRequest struct {
	FileId *uuid.UUID `json:"file_id"`
}

type StartChatResponse struct {
	ChatId uuid.UUID `json:"chat_id"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

type ChatMessageResponse struct {
	Id           uuid.UUID              `json:"id"`
	ChatId       uuid.UUID              `json:"chat_id"`
	Sender       string                 `json:"sender"`
	Message      *string                `json:"message,omitempty"`
	JsonResponse map[string]interface{} `json:"json_response,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}
