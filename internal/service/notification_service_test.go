package service

import (
	"testing"

	"contractvault-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The payload maps below mirror exactly what the publishing services
// put on the bus, so a template/key mismatch fails here.
func TestBuildNotificationFileUploaded(t *testing.T) {
	svc := &NotificationService{}
	userId := uuid.New()

	rule, ok := notificationRules[events.TypeFileUploaded]
	require.True(t, ok)

	evt := events.New(events.TypeFileUploaded, map[string]interface{}{
		"file_id":   uuid.New(),
		"user_id":   userId,
		"file_name": "nda.json",
	})

	notif := svc.buildNotification(userId, events.TypeFileUploaded, rule, evt)

	assert.Equal(t, "Your contract nda.json was stored successfully", notif.Message)
	assert.NotContains(t, notif.Message, "{")
	assert.Equal(t, userId, notif.UserId)
	assert.Equal(t, "nda.json", notif.Metadata["file_name"])
}

func TestBuildNotificationPlanRequestCreated(t *testing.T) {
	svc := &NotificationService{}
	adminId := uuid.New()

	rule, ok := notificationRules[events.TypePlanRequestCreated]
	require.True(t, ok)

	evt := events.New(events.TypePlanRequestCreated, map[string]interface{}{
		"request_id": uuid.New(),
		"user_id":    uuid.New(),
		"plan_id":    uuid.New(),
		"plan_name":  "Professional",
	})

	notif := svc.buildNotification(adminId, events.TypePlanRequestCreated, rule, evt)

	assert.Equal(t, "A user requested a switch to plan Professional", notif.Message)
	assert.NotContains(t, notif.Message, "{")
}

func TestBuildNotificationPlanRequestDecided(t *testing.T) {
	svc := &NotificationService{}
	userId := uuid.New()

	rule, ok := notificationRules[events.TypePlanRequestDecided]
	require.True(t, ok)

	evt := events.New(events.TypePlanRequestDecided, map[string]interface{}{
		"request_id": uuid.New(),
		"user_id":    userId,
		"plan_id":    uuid.New(),
		"status":     "approved",
	})

	notif := svc.buildNotification(userId, events.TypePlanRequestDecided, rule, evt)

	assert.Equal(t, "Your plan change request was approved", notif.Message)
	assert.NotContains(t, notif.Message, "{")
}
