package agentstore

import (
	"context"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/unitofwork"
	"ai-coaching-be/pkg/agent/dispatch"

	"github.com/google/uuid"
)

// AuditLog persists dispatched events as audit_entries rows, one row per
// applied event, scoped to the user and chat session that produced them.
type AuditLog struct {
	factory   unitofwork.RepositoryFactory
	userID    uuid.UUID
	sessionID uuid.UUID
}

func NewAuditLog(factory unitofwork.RepositoryFactory, userID, sessionID uuid.UUID) *AuditLog {
	return &AuditLog{factory: factory, userID: userID, sessionID: sessionID}
}

func (l *AuditLog) Record(ctx context.Context, entry dispatch.AuditEntry) error {
	uow := l.factory.NewUnitOfWork(ctx)
	return uow.AuditRepository().Create(ctx, &entity.AuditEntry{
		Id:        uuid.New(),
		UserId:    l.userID,
		SessionId: l.sessionID,
		EventType: entry.EventType,
		Aggregate: entry.Aggregate,
		Payload:   entry.Payload,
		CreatedAt: entry.At,
	})
}
