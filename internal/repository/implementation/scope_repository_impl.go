package implementation

import (
	"context"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/mapper"
	"ai-coaching-be/internal/model"
	"ai-coaching-be/internal/repository/contract"
	"ai-coaching-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ScopeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScopeMapper
}

func NewScopeRepository(db *gorm.DB) contract.ScopeRepository {
	return &ScopeRepositoryImpl{
		db:     db,
		mapper: mapper.NewScopeMapper(),
	}
}

func (r *ScopeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScopeRepositoryImpl) Create(ctx context.Context, entry *entity.ScopeEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScopeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScopeEntry, error) {
	var models []*model.ScopeEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
