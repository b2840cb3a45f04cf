package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ChatSession tracks an active conversation. Sessions are ephemeral;
// the message history itself is persisted separately.
type ChatSession struct {
	ChatId       uuid.UUID
	UserId       uuid.UUID
	FileId       *uuid.UUID
	StartedAt    time.Time
	LastActivity time.Time
}

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions expire after 1 hour of inactivity, purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *ChatSession) {
	session.LastActivity = time.Now()
	r.cache.Set(session.ChatId.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(chatId uuid.UUID) (*ChatSession, bool) {
	if x, found := r.cache.Get(chatId.String()); found {
		return x.(*ChatSession), true
	}
	return nil, false
}

func (r *SessionRepository) Touch(chatId uuid.UUID) {
	if s, found := r.Get(chatId); found {
		r.Save(s)
	}
}

func (r *SessionRepository) Delete(chatId uuid.UUID) {
	r.cache.Delete(chatId.String())
}
