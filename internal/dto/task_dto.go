package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	ContactId   *uuid.UUID `json:"contact_id"`
	DueDate     time.Time  `json:"due_date"`
}

type CreateTaskResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateTaskRequest struct {
	Id          uuid.UUID
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=open done"`
}

type TaskResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ContactId   *uuid.UUID `json:"contact_id,omitempty"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
