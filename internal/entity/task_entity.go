package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

type Task struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Description string
	ContactId   *uuid.UUID
	DueDate     time.Time
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
