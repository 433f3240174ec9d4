package model

import (
	"time"

	"github.com/google/uuid"
)

type Interaction struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContactId  *uuid.UUID `gorm:"type:uuid;index"`
	Kind       string     `gorm:"type:varchar(50)"`
	Summary    string     `gorm:"type:text;not null"`
	OccurredAt time.Time  `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

func (Interaction) TableName() string {
	return "interactions"
}
