package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content"`
	ContactId *uuid.UUID `json:"contact_id"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// PublishEmbedNoteMessage is the in-process bus payload asking the consumer
// to (re)generate embeddings for one note.
type PublishEmbedNoteMessage struct {
	NoteId uuid.UUID `json:"note_id"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ContactId *uuid.UUID `json:"contact_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
