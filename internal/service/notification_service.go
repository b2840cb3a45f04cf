package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contractvault-be/internal/model"
	"contractvault-be/internal/pkg/logger"
	"contractvault-be/internal/repository"
	"contractvault-be/pkg/events"
	pkgNats "contractvault-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

// notificationRule maps an event type onto an inbox entry. Target is
// either "self" (the user_id in the payload) or "admin" (every admin
// account).
type notificationRule struct {
	Target   string
	Title    string
	Template string
}

var notificationRules = map[string]notificationRule{
	events.TypeUserRegistered: {
		Target:   "admin",
		Title:    "New user registered",
		Template: "{email} just created an account",
	},
	events.TypeFileUploaded: {
		Target:   "self",
		Title:    "Contract uploaded",
		Template: "Your contract {file_name} was stored successfully",
	},
	events.TypePlanRequestCreated: {
		Target:   "admin",
		Title:    "Plan change requested",
		Template: "A user requested a switch to plan {plan_name}",
	},
	events.TypePlanRequestDecided: {
		Target:   "self",
		Title:    "Plan request decided",
		Template: "Your plan change request was {status}",
	},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pkgNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pkgNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening on the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	rule, ok := notificationRules[typeCode]
	if !ok {
		// Events without an inbox mapping are consumed silently.
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, rule, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err.Error()})
		return err // NATS redelivers
	}

	for _, userId := range recipients {
		notif := s.buildNotification(userId, typeCode, rule, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userId), map[string]interface{}{"error": err.Error()})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userId, notif)
		}
	}

	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, rule notificationRule, event events.Event) ([]uuid.UUID, error) {
	switch rule.Target {
	case "self":
		uidStr, ok := event.Payload()["user_id"].(string)
		if !ok {
			s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", event.EventType()), nil)
			return nil, nil
		}
		uid, err := uuid.Parse(uidStr)
		if err != nil {
			return nil, nil
		}
		return []uuid.UUID{uid}, nil

	case "admin":
		return s.repo.GetUserIdsByRole(ctx, "admin")
	}

	return nil, nil
}

func (s *NotificationService) buildNotification(userId uuid.UUID, typeCode string, rule notificationRule, event events.Event) model.Notification {
	msg := rule.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	meta := make(datatypes.JSONMap, len(payload))
	for k, v := range payload {
		meta[k] = v
	}

	return model.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		TypeCode:  typeCode,
		Title:     rule.Title,
		Message:   msg,
		Metadata:  meta,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

// GetNotifications fetches a page of notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userId uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userId, limit, offset)
}

// GetUnreadCount fetches the unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userId)
}

// MarkAsRead marks a single notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every notification for a user as read.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userId)
}
