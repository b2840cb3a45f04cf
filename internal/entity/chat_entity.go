package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSender string

const (
	ChatSenderUser ChatSender = "user"
	ChatSenderAI   ChatSender = "ai"
)

type ChatMessage struct {
	Id           uuid.UUID
	ChatId       uuid.UUID
	UserId       uuid.UUID
	Sender       ChatSender
	Message      *string                // user text messages
	JsonResponse map[string]interface{} // AI structured responses
	CreatedAt    time.Time
}
