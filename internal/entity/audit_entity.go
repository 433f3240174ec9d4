package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one dispatched agent event alongside the mutation
// it caused. Exactly one entry per successful dispatch.
type AuditEntry struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId uuid.UUID
	EventType string
	Aggregate string
	Payload   map[string]interface{}
	CreatedAt time.Time
}
