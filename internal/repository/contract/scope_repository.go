package contract

import (
	"context"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"
)

type ScopeRepository interface {
	Create(ctx context.Context, entry *entity.ScopeEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScopeEntry, error)
}
