package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSaveAndGet(t *testing.T) {
	repo := NewSessionRepository()

	chatId := uuid.New()
	userId := uuid.New()
	repo.Save(&ChatSession{ChatId: chatId, UserId: userId, StartedAt: time.Now()})

	got, found := repo.Get(chatId)
	require.True(t, found)
	assert.Equal(t, chatId, got.ChatId)
	assert.Equal(t, userId, got.UserId)
	assert.False(t, got.LastActivity.IsZero(), "Save should stamp LastActivity")
}

func TestSessionGetUnknown(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get(uuid.New())
	assert.False(t, found)
}

func TestSessionTouchRefreshesActivity(t *testing.T) {
	repo := NewSessionRepository()

	chatId := uuid.New()
	repo.Save(&ChatSession{ChatId: chatId, UserId: uuid.New()})

	before, _ := repo.Get(chatId)
	stamp := before.LastActivity

	time.Sleep(5 * time.Millisecond)
	repo.Touch(chatId)

	after, found := repo.Get(chatId)
	require.True(t, found)
	assert.True(t, after.LastActivity.After(stamp))
}

func TestSessionTouchUnknownIsNoop(t *testing.T) {
	repo := NewSessionRepository()

	repo.Touch(uuid.New()) // must not panic or create a session

	_, found := repo.Get(uuid.New())
	assert.False(t, found)
}

func TestSessionDelete(t *testing.T) {
	repo := NewSessionRepository()

	chatId := uuid.New()
	repo.Save(&ChatSession{ChatId: chatId, UserId: uuid.New()})
	repo.Delete(chatId)

	_, found := repo.Get(chatId)
	assert.False(t, found)
}
