package contract

import (
	"context"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEntry, error)
}
