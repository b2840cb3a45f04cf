package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"contractvault-be/internal/model"
	"contractvault-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAuditService records user-facing actions into the system_logs table.
// Record publishes onto an in-process channel and returns immediately;
// the consumer goroutine does the actual insert so request latency is
// not tied to audit writes.
type IAuditService interface {
	Record(ctx context.Context, actorId *uuid.UUID, action, msg string)
	Consume(ctx context.Context) error
}

type auditEntry struct {
	ActorId *uuid.UUID `json:"actor_id,omitempty"`
	Action  string     `json:"action"`
	Message string     `json:"message"`
}

type auditService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IAuditService {
	return &auditService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (s *auditService) Record(ctx context.Context, actorId *uuid.UUID, action, msg string) {
	entry := auditEntry{
		ActorId: actorId,
		Action:  action,
		Message: msg,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal audit entry: %v", err)
		return
	}

	wmsg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, wmsg); err != nil {
		log.Printf("[ERROR] Failed to publish audit entry: %v", err)
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var entry auditEntry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit entry: %v", err)
		msg.Ack() // malformed, retrying will not help
		return
	}

	module := "audit"
	row := &model.SystemLog{
		Level:     "INFO",
		Module:    &module,
		ActorId:   entry.ActorId,
		Action:    entry.Action,
		Message:   entry.Message,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().CreateLog(ctx, row); err != nil {
		log.Printf("[ERROR] Failed to persist audit entry: %v", err)
		msg.Nack()
		return
	}

	msg.Ack()
}
