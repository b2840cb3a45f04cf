package service

import (
	"context"
	"time"

	"contractvault-be/internal/dto"
	"contractvault-be/internal/entity"
	"contractvault-be/internal/pkg/apperror"
	"contractvault-be/internal/repository/memory"
	"contractvault-be/internal/repository/specification"
	"contractvault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatService interface {
	StartChat(ctx context.Context, userId uuid.UUID, req *dto.StartChatRequest) (*dto.StartChatResponse, error)
	SendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	RecordResponse(ctx context.Context, userId, chatId uuid.UUID, jsonResponse map[string]interface{}) (*dto.ChatMessageResponse, error)
	History(ctx context.Context, userId, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionRepository
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, sessions *memory.SessionRepository) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		sessions:   sessions,
	}
}

func (s *chatService) StartChat(ctx context.Context, userId uuid.UUID, req *dto.StartChatRequest) (*dto.StartChatResponse, error) {
	if req.FileId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		file, err := uow.FileRepository().FindOne(ctx,
			specification.ByID{ID: *req.FileId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if file == nil {
			return nil, apperror.NotFound("File not found or unauthorized")
		}
	}

	chatId := uuid.New()
	s.sessions.Save(&memory.ChatSession{
		ChatId:    chatId,
		UserId:    userId,
		FileId:    req.FileId,
		StartedAt: time.Now(),
	})

	return &dto.StartChatResponse{ChatId: chatId}, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	if err := s.checkSession(chatId, userId); err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		UserId:    userId,
		Sender:    entity.ChatSenderUser,
		Message:   &req.Message,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatRepository().CreateMessage(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	s.sessions.Touch(chatId)
	return toChatMessageResponse(msg), nil
}

// RecordResponse persists an assistant reply. The reply payload is kept
// as structured JSON so clients can render rich content.
func (s *chatService) RecordResponse(ctx context.Context, userId, chatId uuid.UUID, jsonResponse map[string]interface{}) (*dto.ChatMessageResponse, error) {
	if err := s.checkSession(chatId, userId); err != nil {
		return nil, err
	}

	msg := &entity.ChatMessage{
		Id:           uuid.New(),
		ChatId:       chatId,
		UserId:       userId,
		Sender:       entity.ChatSenderAI,
		JsonResponse: jsonResponse,
		CreatedAt:    time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatRepository().CreateMessage(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	s.sessions.Touch(chatId)
	return toChatMessageResponse(msg), nil
}

func (s *chatService) History(ctx context.Context, userId, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatRepository().FindMessages(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toChatMessageResponse(m)
	}
	return out, nil
}

// checkSession allows a chat to continue after the in-memory session
// expired; it only rejects a session that is live and owned by someone
// else.
func (s *chatService) checkSession(chatId, userId uuid.UUID) error {
	if session, found := s.sessions.Get(chatId); found && session.UserId != userId {
		return apperror.NotFound("chat not found")
	}
	return nil
}

func toChatMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:           m.Id,
		ChatId:       m.ChatId,
		Sender:       string(m.Sender),
		Message:      m.Message,
		JsonResponse: m.JsonResponse,
		CreatedAt:    m.CreatedAt,
	}
}
