package entity

import (
	"time"

	"github.com/google/uuid"
)

type ScopeEntryKind string

const (
	ScopeEntryIteration    ScopeEntryKind = "iteration"
	ScopeEntryDoctrineNote ScopeEntryKind = "doctrine_note"
)

// ScopeEntry is a ledger line in the user's scope journal. Iteration
// entries track cycles of effort across wants, doctrine notes capture
// clarifications the coach made about the rules themselves.
type ScopeEntry struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Kind      ScopeEntryKind
	Content   string
	CreatedAt time.Time
}
