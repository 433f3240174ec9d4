package model

import (
	"time"

	"github.com/google/uuid"
)

type Want struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title            string     `gorm:"type:varchar(255);not null"`
	Description      string     `gorm:"type:text"`
	Status           string     `gorm:"type:varchar(20);not null;default:'active'"`
	PrimaryContactId *uuid.UUID `gorm:"type:uuid;index"`
	ContactBearing   string     `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

func (Want) TableName() string {
	return "wants"
}

type WantStep struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WantId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text;not null"`
	Position    int       `gorm:"not null;default:0"`
	Done        bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (WantStep) TableName() string {
	return "want_steps"
}

type WantMetricType struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WantId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Unit      string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (WantMetricType) TableName() string {
	return "want_metric_types"
}

type WantMetricValue struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MetricTypeId uuid.UUID `gorm:"type:uuid;not null;index"`
	Value        float64   `gorm:"not null"`
	RecordedAt   time.Time `gorm:"not null"`
}

func (WantMetricValue) TableName() string {
	return "want_metric_values"
}

type WantIteration struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WantId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Summary   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (WantIteration) TableName() string {
	return "want_iterations"
}

type RejectedShould struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	WantId    *uuid.UUID `gorm:"type:uuid"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Reason    string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (RejectedShould) TableName() string {
	return "rejected_shoulds"
}
