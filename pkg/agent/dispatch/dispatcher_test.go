package dispatch

import (
	"context"
	"io"
	"log"
	"testing"

	"ai-coaching-be/pkg/agent/envelope"
	"ai-coaching-be/pkg/doctrine"
)

// fakeStores records every mutation so tests can assert the
// one-event-one-mutation guarantee.
type fakeStores struct {
	taskCreates        []TaskCreate
	taskUpdates        []TaskUpdate
	noteCreates        []NoteCreate
	interactionCreates []InteractionCreate
	wantCreates        []WantCreate
	wantUpdates        []WantUpdate
	steps              []string
	metricTypes        []string
	metricValues       []float64
	metricBatches      []map[string]float64
	iterations         []string
	attachments        []string
	detachments        []string
	rejectedShoulds    []string
	scopeEntries       []string
	doctrineNotes      []string
}

func (f *fakeStores) Create(_ context.Context, p TaskCreate) error {
	f.taskCreates = append(f.taskCreates, p)
	return nil
}
func (f *fakeStores) Update(_ context.Context, p TaskUpdate) error {
	f.taskUpdates = append(f.taskUpdates, p)
	return nil
}

type fakeNoteStore struct{ f *fakeStores }

func (s fakeNoteStore) Create(_ context.Context, p NoteCreate) error {
	s.f.noteCreates = append(s.f.noteCreates, p)
	return nil
}

type fakeInteractionStore struct{ f *fakeStores }

func (s fakeInteractionStore) Create(_ context.Context, p InteractionCreate) error {
	s.f.interactionCreates = append(s.f.interactionCreates, p)
	return nil
}

type fakeWantStore struct{ f *fakeStores }

func (s fakeWantStore) Create(_ context.Context, p WantCreate) error {
	s.f.wantCreates = append(s.f.wantCreates, p)
	return nil
}
func (s fakeWantStore) Update(_ context.Context, p WantUpdate) error {
	s.f.wantUpdates = append(s.f.wantUpdates, p)
	return nil
}
func (s fakeWantStore) AddStep(_ context.Context, wantID, step string) error {
	s.f.steps = append(s.f.steps, wantID+":"+step)
	return nil
}
func (s fakeWantStore) AddMetricType(_ context.Context, wantID, name, unit string) error {
	s.f.metricTypes = append(s.f.metricTypes, wantID+":"+name+":"+unit)
	return nil
}
func (s fakeWantStore) LogMetricValue(_ context.Context, wantID, metric string, value float64, date string) error {
	s.f.metricValues = append(s.f.metricValues, value)
	return nil
}
func (s fakeWantStore) LogMetrics(_ context.Context, wantID string, values map[string]float64, date string) error {
	s.f.metricBatches = append(s.f.metricBatches, values)
	return nil
}
func (s fakeWantStore) LogIteration(_ context.Context, wantID, note string) error {
	s.f.iterations = append(s.f.iterations, wantID+":"+note)
	return nil
}
func (s fakeWantStore) AttachPrimaryContact(_ context.Context, wantID, contactID, bearing string) error {
	s.f.attachments = append(s.f.attachments, wantID+":"+contactID)
	return nil
}
func (s fakeWantStore) DetachPrimaryContact(_ context.Context, wantID string) error {
	s.f.detachments = append(s.f.detachments, wantID)
	return nil
}
func (s fakeWantStore) CreateRejectedShould(_ context.Context, title, reason string) error {
	s.f.rejectedShoulds = append(s.f.rejectedShoulds, title+":"+reason)
	return nil
}

type fakeScopeStore struct{ f *fakeStores }

func (s fakeScopeStore) LogIterationEntry(_ context.Context, content string) error {
	s.f.scopeEntries = append(s.f.scopeEntries, content)
	return nil
}
func (s fakeScopeStore) AddDoctrineNote(_ context.Context, content string) error {
	s.f.doctrineNotes = append(s.f.doctrineNotes, content)
	return nil
}

func (f *fakeStores) mutationCount() int {
	return len(f.taskCreates) + len(f.taskUpdates) + len(f.noteCreates) +
		len(f.interactionCreates) + len(f.wantCreates) + len(f.wantUpdates) +
		len(f.steps) + len(f.metricTypes) + len(f.metricValues) +
		len(f.metricBatches) + len(f.iterations) + len(f.attachments) +
		len(f.detachments) + len(f.rejectedShoulds) + len(f.scopeEntries) +
		len(f.doctrineNotes)
}

func newTestDispatcher(f *fakeStores, audit *MemoryAuditLog) *Dispatcher {
	return NewDispatcher(
		doctrine.Default(),
		f,
		fakeNoteStore{f},
		fakeInteractionStore{f},
		fakeWantStore{f},
		fakeScopeStore{f},
		audit,
		log.New(io.Discard, "", 0),
	)
}

func TestDispatchTaskCreateScenario(t *testing.T) {
	f := &fakeStores{}
	audit := NewMemoryAuditLog()
	d := newTestDispatcher(f, audit)

	ev := &envelope.DomainEvent{
		Type:    "task.create",
		Payload: map[string]any{"title": "Call Bob", "contactId": "c1"},
	}
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	if len(f.taskCreates) != 1 {
		t.Fatalf("task creates = %d, want 1", len(f.taskCreates))
	}
	if f.taskCreates[0].Title != "Call Bob" || f.taskCreates[0].ContactID != "c1" {
		t.Errorf("task = %+v", f.taskCreates[0])
	}
	if f.mutationCount() != 1 {
		t.Errorf("mutations = %d, want exactly 1", f.mutationCount())
	}
	if len(audit.Entries()) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.Entries()))
	}
	if audit.Entries()[0].EventType != "task.create" || audit.Entries()[0].Aggregate != "task" {
		t.Errorf("audit = %+v", audit.Entries()[0])
	}
}

func TestDispatchDefaults(t *testing.T) {
	f := &fakeStores{}
	d := newTestDispatcher(f, NewMemoryAuditLog())

	ev := &envelope.DomainEvent{Type: doctrine.EventTaskCreate, Payload: map[string]any{}}
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if f.taskCreates[0].Title != DefaultTitle {
		t.Errorf("Title = %q, want placeholder", f.taskCreates[0].Title)
	}
}

func TestDispatchRejectedShouldWithoutReason(t *testing.T) {
	f := &fakeStores{}
	audit := NewMemoryAuditLog()
	d := newTestDispatcher(f, audit)

	ev := &envelope.DomainEvent{
		Type:    doctrine.EventWantRejectShould,
		Payload: map[string]any{"title": "Get promoted", "reason": ""},
	}
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if len(f.rejectedShoulds) != 1 {
		t.Fatalf("rejected shoulds = %d, want 1", len(f.rejectedShoulds))
	}
	if f.rejectedShoulds[0] != "Get promoted:"+DefaultRejectionReason {
		t.Errorf("record = %q, want placeholder reason", f.rejectedShoulds[0])
	}
	if len(audit.Entries()) != 1 {
		t.Errorf("audit entries = %d, want 1", len(audit.Entries()))
	}
}

func TestDispatchUnknownTypeIgnored(t *testing.T) {
	f := &fakeStores{}
	audit := NewMemoryAuditLog()
	d := newTestDispatcher(f, audit)

	ev := &envelope.DomainEvent{Type: "galaxy.terraform", Payload: map[string]any{"x": 1}}
	if err := d.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if f.mutationCount() != 0 {
		t.Error("unknown type must not mutate anything")
	}
	if len(audit.Entries()) != 0 {
		t.Error("unknown type must not be audited")
	}
}

func TestDispatchMissingRequiredField(t *testing.T) {
	f := &fakeStores{}
	audit := NewMemoryAuditLog()
	d := newTestDispatcher(f, audit)

	ev := &envelope.DomainEvent{Type: doctrine.EventWantAttachContact, Payload: map[string]any{"wantId": "w1"}}
	if err := d.Dispatch(context.Background(), ev); err == nil {
		t.Fatal("expected error for missing contactId")
	}
	if f.mutationCount() != 0 {
		t.Error("failed dispatch must not mutate anything")
	}
	if len(audit.Entries()) != 0 {
		t.Error("failed dispatch must not be audited")
	}
}

func TestDispatchMetricValueCoercion(t *testing.T) {
	f := &fakeStores{}
	d := newTestDispatcher(f, NewMemoryAuditLog())

	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{name: "json number", value: 12.5, want: 12.5, ok: true},
		{name: "numeric string", value: "42", want: 42, ok: true},
		{name: "garbage string", value: "a lot", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(f.metricValues)
			ev := &envelope.DomainEvent{
				Type:    doctrine.EventWantLogMetricValue,
				Payload: map[string]any{"wantId": "w1", "metric": "km", "value": tt.value},
			}
			err := d.Dispatch(context.Background(), ev)
			if tt.ok {
				if err != nil {
					t.Fatal(err)
				}
				if got := f.metricValues[len(f.metricValues)-1]; got != tt.want {
					t.Errorf("value = %v, want %v", got, tt.want)
				}
			} else {
				if err == nil {
					t.Fatal("expected error")
				}
				if len(f.metricValues) != before {
					t.Error("bad value must not write a bucket")
				}
			}
		})
	}
}

func TestDispatchEveryCatalogEntryRoutes(t *testing.T) {
	payloads := map[string]map[string]any{
		doctrine.EventTaskCreate:         {"title": "t"},
		doctrine.EventTaskUpdate:         {"taskId": "t1", "status": "done"},
		doctrine.EventNoteCreate:         {"content": "c"},
		doctrine.EventInteractionCreate:  {"contactId": "c1", "summary": "s"},
		doctrine.EventWantCreate:         {"title": "w"},
		doctrine.EventWantUpdate:         {"wantId": "w1"},
		doctrine.EventWantAddStep:        {"wantId": "w1", "step": "s"},
		doctrine.EventWantAddMetricType:  {"wantId": "w1", "name": "km"},
		doctrine.EventWantLogMetricValue: {"wantId": "w1", "metric": "km", "value": 1.0},
		doctrine.EventWantLogMetrics:     {"wantId": "w1", "values": map[string]any{"km": 2.0}},
		doctrine.EventWantLogIteration:   {"wantId": "w1", "note": "n"},
		doctrine.EventWantAttachContact:  {"wantId": "w1", "contactId": "c1"},
		doctrine.EventWantDetachContact:  {"wantId": "w1"},
		doctrine.EventWantRejectShould:   {"title": "t", "reason": "r"},
		doctrine.EventScopeLogIteration:  {"content": "c"},
		doctrine.EventScopeAddNote:       {"content": "c"},
	}

	spec := doctrine.Default()
	if len(payloads) != len(spec.Events) {
		t.Fatalf("test covers %d types, catalog has %d", len(payloads), len(spec.Events))
	}

	f := &fakeStores{}
	audit := NewMemoryAuditLog()
	d := newTestDispatcher(f, audit)

	for _, def := range spec.Events {
		ev := &envelope.DomainEvent{Type: def.Type, Payload: payloads[def.Type]}
		if err := d.Dispatch(context.Background(), ev); err != nil {
			t.Errorf("%s: %v", def.Type, err)
		}
	}

	if f.mutationCount() != len(spec.Events) {
		t.Errorf("mutations = %d, want %d", f.mutationCount(), len(spec.Events))
	}
	if len(audit.Entries()) != len(spec.Events) {
		t.Errorf("audit entries = %d, want %d", len(audit.Entries()), len(spec.Events))
	}
}

func TestMemoryAuditLogReset(t *testing.T) {
	audit := NewMemoryAuditLog()
	_ = audit.Record(context.Background(), AuditEntry{EventType: "x"})
	audit.Reset()
	if len(audit.Entries()) != 0 {
		t.Error("reset did not clear entries")
	}
}
