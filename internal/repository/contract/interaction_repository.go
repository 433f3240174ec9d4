package contract

import (
	"context"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error)
}
