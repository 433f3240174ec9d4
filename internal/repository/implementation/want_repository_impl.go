package implementation

import (
	"context"
	"errors"
	"time"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/mapper"
	"ai-coaching-be/internal/model"
	"ai-coaching-be/internal/repository/contract"
	"ai-coaching-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WantRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WantMapper
}

func NewWantRepository(db *gorm.DB) contract.WantRepository {
	return &WantRepositoryImpl{
		db:     db,
		mapper: mapper.NewWantMapper(),
	}
}

func (r *WantRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WantRepositoryImpl) Create(ctx context.Context, want *entity.Want) error {
	m := r.mapper.ToModel(want)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*want = *r.mapper.ToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) Update(ctx context.Context, want *entity.Want) error {
	m := r.mapper.ToModel(want)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*want = *r.mapper.ToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Want, error) {
	var m model.Want
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Want, error) {
	var models []*model.Want
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WantRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Want{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WantRepositoryImpl) CreateStep(ctx context.Context, step *entity.WantStep) error {
	m := r.mapper.StepToModel(step)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*step = *r.mapper.StepToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) FindSteps(ctx context.Context, specs ...specification.Specification) ([]*entity.WantStep, error) {
	var models []*model.WantStep
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("position ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.StepsToEntities(models), nil
}

func (r *WantRepositoryImpl) CreateMetricType(ctx context.Context, metricType *entity.WantMetricType) error {
	m := r.mapper.MetricTypeToModel(metricType)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*metricType = *r.mapper.MetricTypeToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) FindMetricTypes(ctx context.Context, specs ...specification.Specification) ([]*entity.WantMetricType, error) {
	var models []*model.WantMetricType
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MetricTypesToEntities(models), nil
}

func (r *WantRepositoryImpl) CreateMetricValue(ctx context.Context, value *entity.WantMetricValue) error {
	m := r.mapper.MetricValueToModel(value)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*value = *r.mapper.MetricValueToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) DeleteMetricValuesForDate(ctx context.Context, metricTypeId uuid.UUID, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	return r.db.WithContext(ctx).
		Where("metric_type_id = ? AND recorded_at >= ? AND recorded_at < ?", metricTypeId, start, end).
		Delete(&model.WantMetricValue{}).Error
}

func (r *WantRepositoryImpl) CreateIteration(ctx context.Context, iteration *entity.WantIteration) error {
	m := r.mapper.IterationToModel(iteration)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*iteration = *r.mapper.IterationToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) CreateRejectedShould(ctx context.Context, rejected *entity.RejectedShould) error {
	m := r.mapper.RejectedShouldToModel(rejected)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rejected = *r.mapper.RejectedShouldToEntity(m)
	return nil
}

func (r *WantRepositoryImpl) FindRejectedShoulds(ctx context.Context, specs ...specification.Specification) ([]*entity.RejectedShould, error) {
	var models []*model.RejectedShould
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.RejectedShouldsToEntities(models), nil
}
