package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	ContactId   *uuid.UUID `gorm:"type:uuid;index"`
	DueDate     time.Time  `gorm:"type:date;not null;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}
