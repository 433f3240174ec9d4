package dispatch

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"ai-coaching-be/pkg/agent/envelope"
	"ai-coaching-be/pkg/doctrine"
)

// DefaultTitle fills in for an absent title field on creation events.
const DefaultTitle = "Untitled"

// DefaultRejectionReason fills in when the model rejects a want without
// articulating why. The rejection record is written either way.
const DefaultRejectionReason = "Classified as a Should rather than a Want"

// Dispatcher maps a validated domain event to exactly one mutation on one
// store collaborator, plus one audit entry. There is no retry and no partial
// application: a failed mutation leaves every aggregate untouched. An
// unrecognized event type is logged and skipped so the catalog can grow
// without breaking older peers.
type Dispatcher struct {
	spec         *doctrine.Spec
	tasks        TaskStore
	notes        NoteStore
	interactions InteractionStore
	wants        WantStore
	scope        ScopeStore
	audit        AuditLog
	logger       *log.Logger
}

// NewDispatcher wires the dispatcher to its store collaborators.
func NewDispatcher(
	spec *doctrine.Spec,
	tasks TaskStore,
	notes NoteStore,
	interactions InteractionStore,
	wants WantStore,
	scope ScopeStore,
	audit AuditLog,
	logger *log.Logger,
) *Dispatcher {
	return &Dispatcher{
		spec:         spec,
		tasks:        tasks,
		notes:        notes,
		interactions: interactions,
		wants:        wants,
		scope:        scope,
		audit:        audit,
		logger:       logger,
	}
}

// Dispatch applies one event. A nil error means the mutation and its audit
// entry were both written, or the event was skipped as unknown.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *envelope.DomainEvent) error {
	if ev == nil {
		return nil
	}

	def := d.spec.EventDef(ev.Type)
	if def == nil {
		d.logger.Printf("[DISPATCH] Unknown event type %q, skipping", ev.Type)
		return nil
	}

	if err := d.apply(ctx, ev); err != nil {
		return fmt.Errorf("dispatch %s: %w", ev.Type, err)
	}

	entry := AuditEntry{
		EventType: ev.Type,
		Aggregate: def.Aggregate,
		Payload:   ev.Payload,
		At:        time.Now(),
	}
	if err := d.audit.Record(ctx, entry); err != nil {
		return fmt.Errorf("audit %s: %w", ev.Type, err)
	}

	d.logger.Printf("[DISPATCH] Applied %s", ev.Type)
	return nil
}

func (d *Dispatcher) apply(ctx context.Context, ev *envelope.DomainEvent) error {
	p := payload(ev.Payload)

	switch ev.Type {
	case doctrine.EventTaskCreate:
		return d.tasks.Create(ctx, TaskCreate{
			Title:       p.stringOr("title", DefaultTitle),
			Description: p.str("description"),
			ContactID:   p.str("contactId"),
			DueDate:     p.str("dueDate"),
		})

	case doctrine.EventTaskUpdate:
		taskID, err := p.required("taskId")
		if err != nil {
			return err
		}
		return d.tasks.Update(ctx, TaskUpdate{
			TaskID:      taskID,
			Title:       p.str("title"),
			Description: p.str("description"),
			Status:      p.str("status"),
		})

	case doctrine.EventNoteCreate:
		content, err := p.required("content")
		if err != nil {
			return err
		}
		return d.notes.Create(ctx, NoteCreate{
			Title:     p.stringOr("title", DefaultTitle),
			Content:   content,
			ContactID: p.str("contactId"),
		})

	case doctrine.EventInteractionCreate:
		contactID, err := p.required("contactId")
		if err != nil {
			return err
		}
		summary, err := p.required("summary")
		if err != nil {
			return err
		}
		return d.interactions.Create(ctx, InteractionCreate{
			ContactID: contactID,
			Summary:   summary,
			Kind:      p.str("kind"),
		})

	case doctrine.EventWantCreate:
		return d.wants.Create(ctx, WantCreate{
			Title:       p.stringOr("title", DefaultTitle),
			Description: p.str("description"),
		})

	case doctrine.EventWantUpdate:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		return d.wants.Update(ctx, WantUpdate{
			WantID:      wantID,
			Title:       p.str("title"),
			Description: p.str("description"),
			Status:      p.str("status"),
		})

	case doctrine.EventWantAddStep:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		step, err := p.required("step")
		if err != nil {
			return err
		}
		return d.wants.AddStep(ctx, wantID, step)

	case doctrine.EventWantAddMetricType:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		name, err := p.required("name")
		if err != nil {
			return err
		}
		return d.wants.AddMetricType(ctx, wantID, name, p.str("unit"))

	case doctrine.EventWantLogMetricValue:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		metric, err := p.required("metric")
		if err != nil {
			return err
		}
		value, ok := p.number("value")
		if !ok {
			return fmt.Errorf("missing or non-numeric field %q", "value")
		}
		return d.wants.LogMetricValue(ctx, wantID, metric, value, p.str("date"))

	case doctrine.EventWantLogMetrics:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		values, ok := p.numberMap("values")
		if !ok {
			return fmt.Errorf("missing or malformed field %q", "values")
		}
		return d.wants.LogMetrics(ctx, wantID, values, p.str("date"))

	case doctrine.EventWantLogIteration:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		note, err := p.required("note")
		if err != nil {
			return err
		}
		return d.wants.LogIteration(ctx, wantID, note)

	case doctrine.EventWantAttachContact:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		contactID, err := p.required("contactId")
		if err != nil {
			return err
		}
		return d.wants.AttachPrimaryContact(ctx, wantID, contactID, p.str("bearing"))

	case doctrine.EventWantDetachContact:
		wantID, err := p.required("wantId")
		if err != nil {
			return err
		}
		return d.wants.DetachPrimaryContact(ctx, wantID)

	case doctrine.EventWantRejectShould:
		return d.wants.CreateRejectedShould(ctx,
			p.stringOr("title", DefaultTitle),
			p.stringOr("reason", DefaultRejectionReason))

	case doctrine.EventScopeLogIteration:
		content, err := p.required("content")
		if err != nil {
			return err
		}
		return d.scope.LogIterationEntry(ctx, content)

	case doctrine.EventScopeAddNote:
		content, err := p.required("content")
		if err != nil {
			return err
		}
		return d.scope.AddDoctrineNote(ctx, content)
	}

	// Catalog and switch drifted apart; treat like an unknown type.
	d.logger.Printf("[DISPATCH] Catalog type %q has no handler, skipping", ev.Type)
	return nil
}

// payload wraps the loose model payload with typed accessors.
type payload map[string]any

func (p payload) str(key string) string {
	s, _ := p[key].(string)
	return s
}

func (p payload) stringOr(key, fallback string) string {
	if s := p.str(key); s != "" {
		return s
	}
	return fallback
}

func (p payload) required(key string) (string, error) {
	s := p.str(key)
	if s == "" {
		return "", fmt.Errorf("missing required field %q", key)
	}
	return s, nil
}

// number accepts JSON numbers and numeric strings; models emit both.
func (p payload) number(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func (p payload) numberMap(key string) (map[string]float64, bool) {
	raw, ok := p[key].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	values := make(map[string]float64, len(raw))
	for name := range raw {
		f, ok := payload(raw).number(name)
		if !ok {
			return nil, false
		}
		values[name] = f
	}
	return values, true
}
