package entity

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	Relationship string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
