package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByWantID struct {
	WantID uuid.UUID
}

func (s ByWantID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("want_id = ?", s.WantID)
}

type ByMetricTypeID struct {
	MetricTypeID uuid.UUID
}

func (s ByMetricTypeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metric_type_id = ?", s.MetricTypeID)
}

type ByWantStatus struct {
	Status string
}

func (s ByWantStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByScopeKind struct {
	Kind string
}

func (s ByScopeKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}
