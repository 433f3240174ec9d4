package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-coaching-be/pkg/agent/dispatch"
	"ai-coaching-be/pkg/agent/gate"
	"ai-coaching-be/pkg/agent/prompt"
	"ai-coaching-be/pkg/doctrine"
	"ai-coaching-be/pkg/llm"
)

// fakeProvider returns a scripted response and records the messages it saw.
type fakeProvider struct {
	response string
	err      error
	seen     []llm.Message
}

func (f *fakeProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.seen = history
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, p string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: p}}, opts...)
}

// nullStores satisfies every dispatch store with no-ops, counting calls.
type nullStores struct{ calls int }

func (n *nullStores) Create(context.Context, dispatch.TaskCreate) error { n.calls++; return nil }
func (n *nullStores) Update(context.Context, dispatch.TaskUpdate) error { n.calls++; return nil }

type nullNotes struct{ n *nullStores }

func (s nullNotes) Create(context.Context, dispatch.NoteCreate) error { s.n.calls++; return nil }

type nullInteractions struct{ n *nullStores }

func (s nullInteractions) Create(context.Context, dispatch.InteractionCreate) error {
	s.n.calls++
	return nil
}

type nullWants struct{ n *nullStores }

func (s nullWants) Create(context.Context, dispatch.WantCreate) error { s.n.calls++; return nil }
func (s nullWants) Update(context.Context, dispatch.WantUpdate) error { s.n.calls++; return nil }
func (s nullWants) AddStep(context.Context, string, string) error     { s.n.calls++; return nil }
func (s nullWants) AddMetricType(context.Context, string, string, string) error {
	s.n.calls++
	return nil
}
func (s nullWants) LogMetricValue(context.Context, string, string, float64, string) error {
	s.n.calls++
	return nil
}
func (s nullWants) LogMetrics(context.Context, string, map[string]float64, string) error {
	s.n.calls++
	return nil
}
func (s nullWants) LogIteration(context.Context, string, string) error { s.n.calls++; return nil }
func (s nullWants) AttachPrimaryContact(context.Context, string, string, string) error {
	s.n.calls++
	return nil
}
func (s nullWants) DetachPrimaryContact(context.Context, string) error { s.n.calls++; return nil }
func (s nullWants) CreateRejectedShould(context.Context, string, string) error {
	s.n.calls++
	return nil
}

type nullScope struct{ n *nullStores }

func (s nullScope) LogIterationEntry(context.Context, string) error { s.n.calls++; return nil }
func (s nullScope) AddDoctrineNote(context.Context, string) error   { s.n.calls++; return nil }

func newTestOrchestrator(p llm.LLMProvider, stores *nullStores, audit *dispatch.MemoryAuditLog) *Orchestrator {
	spec := doctrine.Default()
	logger := log.New(io.Discard, "", 0)
	d := dispatch.NewDispatcher(spec, stores, nullNotes{stores}, nullInteractions{stores},
		nullWants{stores}, nullScope{stores}, audit, logger)
	return NewOrchestrator(spec, p, d, logger)
}

func TestRunTurnHappyPath(t *testing.T) {
	provider := &fakeProvider{
		response: `{"reply":"Task noted.","event":{"type":"task.create","payload":{"title":"Call Bob","contactId":"c1"}}}`,
	}
	stores := &nullStores{}
	audit := dispatch.NewMemoryAuditLog()
	o := newTestOrchestrator(provider, stores, audit)

	res := o.RunTurn(context.Background(), &TurnRequest{Message: "remind me to call Bob"})

	if res.Reply != "Task noted." {
		t.Errorf("Reply = %q", res.Reply)
	}
	if !res.Dispatched || res.DispatchedType != "task.create" {
		t.Errorf("Dispatched = %v (%s)", res.Dispatched, res.DispatchedType)
	}
	if stores.calls != 1 {
		t.Errorf("store calls = %d, want 1", stores.calls)
	}
	if len(audit.Entries()) != 1 {
		t.Errorf("audit entries = %d, want 1", len(audit.Entries()))
	}
}

func TestRunTurnModelFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("backend down")}
	stores := &nullStores{}
	o := newTestOrchestrator(provider, stores, dispatch.NewMemoryAuditLog())

	res := o.RunTurn(context.Background(), &TurnRequest{Message: "hello"})

	if !res.ModelFailed {
		t.Error("ModelFailed not set")
	}
	if res.Reply != FallbackReply {
		t.Errorf("Reply = %q", res.Reply)
	}
	if res.Dispatched || stores.calls != 0 {
		t.Error("model failure must not dispatch")
	}
}

func TestRunTurnGuardrailBlocksDispatch(t *testing.T) {
	provider := &fakeProvider{
		response: `{"reply":"","guardrail":{"kind":"disrespect","message":"abuse","blocked":true},` +
			`"event":{"type":"task.create","payload":{"title":"x"}}}`,
	}
	stores := &nullStores{}
	audit := dispatch.NewMemoryAuditLog()
	o := newTestOrchestrator(provider, stores, audit)

	res := o.RunTurn(context.Background(), &TurnRequest{Message: "shut up"})

	if res.Outcome != gate.OutcomeGuardrailBlocked {
		t.Fatalf("Outcome = %s", res.Outcome)
	}
	if res.Dispatched || stores.calls != 0 || len(audit.Entries()) != 0 {
		t.Error("blocked guardrail must suppress all dispatch")
	}
	// Empty model reply degrades to the guardrail's canned response.
	canned := doctrine.Default().GuardrailDef("disrespect").CannedResponse
	if res.Reply != canned {
		t.Errorf("Reply = %q, want canned response", res.Reply)
	}
}

func TestRunTurnPlainTextReply(t *testing.T) {
	provider := &fakeProvider{response: "I won't produce JSON, just words."}
	stores := &nullStores{}
	o := newTestOrchestrator(provider, stores, dispatch.NewMemoryAuditLog())

	res := o.RunTurn(context.Background(), &TurnRequest{Message: "hi"})

	if res.Reply != "I won't produce JSON, just words." {
		t.Errorf("Reply = %q", res.Reply)
	}
	if res.Outcome != gate.OutcomeNoEvent || res.Dispatched {
		t.Error("plain text must carry no side effects")
	}
}

func TestRunTurnCancellationSuppressesDispatch(t *testing.T) {
	provider := &fakeProvider{
		response: `{"reply":"ok","event":{"type":"note.create","payload":{"content":"x"}}}`,
	}
	stores := &nullStores{}
	o := newTestOrchestrator(provider, stores, dispatch.NewMemoryAuditLog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := o.RunTurn(ctx, &TurnRequest{Message: "note this"})

	if res.Dispatched || stores.calls != 0 {
		t.Error("abandoned call must not dispatch")
	}
}

func TestRunTurnContextOnlyOnFirstTurn(t *testing.T) {
	provider := &fakeProvider{response: `{"reply":"ok"}`}
	o := newTestOrchestrator(provider, &nullStores{}, dispatch.NewMemoryAuditLog())
	sc := &prompt.SituationContext{SelectedWantID: "w7"}

	o.RunTurn(context.Background(), &TurnRequest{Message: "first", Context: sc})
	first := provider.seen[len(provider.seen)-1].Content
	if !strings.Contains(first, "selected_want_id: w7") {
		t.Error("first turn must carry situational context")
	}

	history := []Message{{Role: "user", Content: "first"}, {Role: "assistant", Content: "ok"}}
	o.RunTurn(context.Background(), &TurnRequest{Message: "second", Context: sc, History: history})
	second := provider.seen[len(provider.seen)-1].Content
	if second != "second" {
		t.Errorf("follow-up turn must be incremental text only, got %q", second)
	}
	if provider.seen[0].Role != "system" {
		t.Error("system prompt missing")
	}
	if len(provider.seen) != len(history)+2 {
		t.Errorf("message count = %d", len(provider.seen))
	}
}

func TestRunTurnWantRejectionRedirect(t *testing.T) {
	provider := &fakeProvider{
		response: `{"reply":"That sounds like a Should.","event":{"type":"want.create","payload":{"title":"Please my boss"}},` +
			`"validation":{"isValidWant":false,"reason":"externally obligated"}}`,
	}
	stores := &nullStores{}
	audit := dispatch.NewMemoryAuditLog()
	o := newTestOrchestrator(provider, stores, audit)

	res := o.RunTurn(context.Background(), &TurnRequest{Message: "I want to please my boss"})

	if res.Outcome != gate.OutcomeWantRejected {
		t.Fatalf("Outcome = %s", res.Outcome)
	}
	if !res.Dispatched || res.DispatchedType != doctrine.EventWantRejectShould {
		t.Errorf("DispatchedType = %q", res.DispatchedType)
	}
	if len(audit.Entries()) != 1 || audit.Entries()[0].EventType != doctrine.EventWantRejectShould {
		t.Errorf("audit = %+v", audit.Entries())
	}
}
