package unitofwork

import (
	"context"

	"contractvault-be/internal/repository"
	"contractvault-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PlanRepository() contract.PlanRepository
	UsageRepository() contract.UsageRepository
	FileRepository() contract.FileRepository
	ChatRepository() contract.ChatRepository
	TemplateRepository() contract.TemplateRepository
	NotificationRepository() repository.NotificationRepository
	SystemLogRepository() repository.SystemLogRepository
}
