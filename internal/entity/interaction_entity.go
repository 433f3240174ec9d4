package entity

import (
	"time"

	"github.com/google/uuid"
)

type Interaction struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ContactId  *uuid.UUID
	Kind       string
	Summary    string
	OccurredAt time.Time
	CreatedAt  time.Time
}
