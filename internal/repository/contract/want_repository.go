package contract

import (
	"context"
	"time"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WantRepository interface {
	Create(ctx context.Context, want *entity.Want) error
	Update(ctx context.Context, want *entity.Want) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Want, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Want, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateStep(ctx context.Context, step *entity.WantStep) error
	FindSteps(ctx context.Context, specs ...specification.Specification) ([]*entity.WantStep, error)

	CreateMetricType(ctx context.Context, metricType *entity.WantMetricType) error
	FindMetricTypes(ctx context.Context, specs ...specification.Specification) ([]*entity.WantMetricType, error)
	CreateMetricValue(ctx context.Context, value *entity.WantMetricValue) error
	DeleteMetricValuesForDate(ctx context.Context, metricTypeId uuid.UUID, day time.Time) error

	CreateIteration(ctx context.Context, iteration *entity.WantIteration) error

	CreateRejectedShould(ctx context.Context, rejected *entity.RejectedShould) error
	FindRejectedShoulds(ctx context.Context, specs ...specification.Specification) ([]*entity.RejectedShould, error)
}
