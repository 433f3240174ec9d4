package dispatch

import (
	"context"
	"time"
)

// Store collaborators consumed by the dispatcher. The interfaces are narrow
// on purpose: each event type maps to exactly one method on exactly one
// collaborator, and tests fake them wholesale. Identifiers travel as strings
// because they originate in model payloads; implementations parse them.

// TaskCreate is the payload for task.create.
type TaskCreate struct {
	Title       string
	Description string
	ContactID   string
	DueDate     string
}

// TaskUpdate is the payload for task.update.
type TaskUpdate struct {
	TaskID      string
	Title       string
	Description string
	Status      string
}

// NoteCreate is the payload for note.create.
type NoteCreate struct {
	Title     string
	Content   string
	ContactID string
}

// InteractionCreate is the payload for interaction.create.
type InteractionCreate struct {
	ContactID string
	Summary   string
	Kind      string
}

// WantCreate is the payload for want.create.
type WantCreate struct {
	Title       string
	Description string
}

// WantUpdate is the payload for want.update.
type WantUpdate struct {
	WantID      string
	Title       string
	Description string
	Status      string
}

type TaskStore interface {
	Create(ctx context.Context, p TaskCreate) error
	Update(ctx context.Context, p TaskUpdate) error
}

type NoteStore interface {
	Create(ctx context.Context, p NoteCreate) error
}

type InteractionStore interface {
	Create(ctx context.Context, p InteractionCreate) error
}

type WantStore interface {
	Create(ctx context.Context, p WantCreate) error
	Update(ctx context.Context, p WantUpdate) error
	AddStep(ctx context.Context, wantID, step string) error
	AddMetricType(ctx context.Context, wantID, name, unit string) error
	// LogMetricValue fully updates the date bucket for one metric or does
	// nothing; date is "YYYY-MM-DD", empty means today.
	LogMetricValue(ctx context.Context, wantID, metric string, value float64, date string) error
	LogMetrics(ctx context.Context, wantID string, values map[string]float64, date string) error
	LogIteration(ctx context.Context, wantID, note string) error
	AttachPrimaryContact(ctx context.Context, wantID, contactID, bearing string) error
	DetachPrimaryContact(ctx context.Context, wantID string) error
	CreateRejectedShould(ctx context.Context, title, reason string) error
}

type ScopeStore interface {
	LogIterationEntry(ctx context.Context, content string) error
	AddDoctrineNote(ctx context.Context, content string) error
}

// AuditEntry records one applied event. The log is an injected collaborator
// with an explicit lifecycle, never process-wide state.
type AuditEntry struct {
	EventType string
	Aggregate string
	Payload   map[string]any
	At        time.Time
}

type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
}
