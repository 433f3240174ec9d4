package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendTurnRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Message       string    `json:"message" validate:"required"`
}

// SendTurnResponse carries the coach reply plus the gate verdict so the
// frontend can render redirects and guardrail stops differently from a
// normal reply.
type SendTurnResponse struct {
	Reply          string `json:"reply"`
	Outcome        string `json:"outcome"`
	GuardrailKind  string `json:"guardrail_kind,omitempty"`
	DispatchedType string `json:"dispatched_type,omitempty"`
	ModelFailed    bool   `json:"model_failed"`
}
