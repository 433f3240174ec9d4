package unitofwork

import (
	"context"

	"ai-coaching-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ContactRepository() contract.ContactRepository
	WantRepository() contract.WantRepository
	TaskRepository() contract.TaskRepository
	NoteRepository() contract.NoteRepository
	NoteEmbeddingRepository() contract.NoteEmbeddingRepository
	InteractionRepository() contract.InteractionRepository
	ScopeRepository() contract.ScopeRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	AuditRepository() contract.AuditRepository
}
