package integration

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-coaching-be/pkg/agent"
	"ai-coaching-be/pkg/agent/dispatch"
	"ai-coaching-be/pkg/agent/gate"
	"ai-coaching-be/pkg/doctrine"
	"ai-coaching-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider plays back a fixed model response.
type scriptedProvider struct {
	response string
	err      error
}

func (p *scriptedProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, opts...)
}

// recorder captures every store mutation and audit entry of a turn.
type recorder struct {
	tasks        []dispatch.TaskCreate
	taskUpdates  []dispatch.TaskUpdate
	notes        []dispatch.NoteCreate
	interactions []dispatch.InteractionCreate
	wants        []dispatch.WantCreate
	wantUpdates  []dispatch.WantUpdate
	rejected     [][2]string
	scopeEntries []string
	audits       []dispatch.AuditEntry
}

func (r *recorder) Create(_ context.Context, p dispatch.TaskCreate) error {
	r.tasks = append(r.tasks, p)
	return nil
}

func (r *recorder) Update(_ context.Context, p dispatch.TaskUpdate) error {
	r.taskUpdates = append(r.taskUpdates, p)
	return nil
}

type noteRecorder struct{ r *recorder }

func (s noteRecorder) Create(_ context.Context, p dispatch.NoteCreate) error {
	s.r.notes = append(s.r.notes, p)
	return nil
}

type interactionRecorder struct{ r *recorder }

func (s interactionRecorder) Create(_ context.Context, p dispatch.InteractionCreate) error {
	s.r.interactions = append(s.r.interactions, p)
	return nil
}

type wantRecorder struct{ r *recorder }

func (s wantRecorder) Create(_ context.Context, p dispatch.WantCreate) error {
	s.r.wants = append(s.r.wants, p)
	return nil
}

func (s wantRecorder) Update(_ context.Context, p dispatch.WantUpdate) error {
	s.r.wantUpdates = append(s.r.wantUpdates, p)
	return nil
}

func (s wantRecorder) AddStep(context.Context, string, string) error { return nil }

func (s wantRecorder) AddMetricType(context.Context, string, string, string) error { return nil }

func (s wantRecorder) LogMetricValue(context.Context, string, string, float64, string) error {
	return nil
}

func (s wantRecorder) LogMetrics(context.Context, string, map[string]float64, string) error {
	return nil
}

func (s wantRecorder) LogIteration(context.Context, string, string) error { return nil }

func (s wantRecorder) AttachPrimaryContact(context.Context, string, string, string) error {
	return nil
}

func (s wantRecorder) DetachPrimaryContact(context.Context, string) error { return nil }

func (s wantRecorder) CreateRejectedShould(_ context.Context, title, reason string) error {
	s.r.rejected = append(s.r.rejected, [2]string{title, reason})
	return nil
}

type scopeRecorder struct{ r *recorder }

func (s scopeRecorder) LogIterationEntry(_ context.Context, content string) error {
	s.r.scopeEntries = append(s.r.scopeEntries, content)
	return nil
}

func (s scopeRecorder) AddDoctrineNote(_ context.Context, content string) error {
	s.r.scopeEntries = append(s.r.scopeEntries, content)
	return nil
}

func (r *recorder) Record(_ context.Context, entry dispatch.AuditEntry) error {
	r.audits = append(r.audits, entry)
	return nil
}

func newPipeline(t *testing.T, response string, provErr error) (*agent.Orchestrator, *recorder) {
	t.Helper()

	spec := doctrine.Default()
	rec := &recorder{}
	logger := log.New(io.Discard, "", 0)

	dispatcher := dispatch.NewDispatcher(
		spec,
		rec,
		noteRecorder{rec},
		interactionRecorder{rec},
		wantRecorder{rec},
		scopeRecorder{rec},
		rec,
		logger,
	)

	provider := &scriptedProvider{response: response, err: provErr}
	return agent.NewOrchestrator(spec, provider, dispatcher, logger), rec
}

func TestTurnDispatchesTaskAndWritesAudit(t *testing.T) {
	response := `{
		"reply": "I added that to your list.",
		"event": {"type": "task.create", "payload": {"title": "Call the landlord", "description": "About the lease"}}
	}`
	orch, rec := newPipeline(t, response, nil)

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "remind me to call the landlord"})

	require.Equal(t, gate.OutcomePass, result.Outcome)
	assert.True(t, result.Dispatched)
	assert.Equal(t, "task.create", result.DispatchedType)
	assert.Equal(t, "I added that to your list.", result.Reply)

	require.Len(t, rec.tasks, 1)
	assert.Equal(t, "Call the landlord", rec.tasks[0].Title)

	require.Len(t, rec.audits, 1)
	assert.Equal(t, "task.create", rec.audits[0].EventType)
	assert.Equal(t, "task", rec.audits[0].Aggregate)
}

func TestGuardrailVetoesEveryEvent(t *testing.T) {
	response := `{
		"reply": "",
		"event": {"type": "want.create", "payload": {"title": "Get revenge"}},
		"guardrail": {"kind": "disrespect", "message": "hostile intent", "blocked": true}
	}`
	orch, rec := newPipeline(t, response, nil)

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "I want to make him pay"})

	assert.Equal(t, gate.OutcomeGuardrailBlocked, result.Outcome)
	assert.False(t, result.Dispatched)
	require.NotNil(t, result.Guardrail)
	assert.Equal(t, "disrespect", result.Guardrail.Kind)
	assert.NotEmpty(t, result.Reply)

	assert.Empty(t, rec.wants)
	assert.Empty(t, rec.audits)
}

func TestInvalidWantBecomesRejectedShould(t *testing.T) {
	response := `{
		"reply": "That sounds like something you feel obligated to do.",
		"event": {"type": "want.create", "payload": {"title": "Visit relatives weekly"}},
		"validation": {"isValidWant": false, "reason": "framed as an obligation"}
	}`
	orch, rec := newPipeline(t, response, nil)

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "I should visit my relatives every week"})

	assert.Equal(t, gate.OutcomeWantRejected, result.Outcome)
	assert.True(t, result.Dispatched)
	assert.Equal(t, "want.createRejectedShould", result.DispatchedType)

	assert.Empty(t, rec.wants)
	require.Len(t, rec.rejected, 1)
	assert.Equal(t, "Visit relatives weekly", rec.rejected[0][0])
	assert.Equal(t, "framed as an obligation", rec.rejected[0][1])
}

func TestInvalidWantWithoutReasonStillLeavesARecord(t *testing.T) {
	response := `{
		"reply": "Let's look at where that goal is coming from.",
		"event": {"type": "want.create", "payload": {"title": "Get promoted"}},
		"validation": {"isValidWant": false, "reason": ""}
	}`
	orch, rec := newPipeline(t, response, nil)

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "I should go for that promotion"})

	assert.Equal(t, gate.OutcomeWantRejected, result.Outcome)
	assert.True(t, result.Dispatched)

	assert.Empty(t, rec.wants)
	require.Len(t, rec.rejected, 1)
	assert.Equal(t, "Get promoted", rec.rejected[0][0])
	assert.Equal(t, dispatch.DefaultRejectionReason, rec.rejected[0][1])
}

func TestIndirectContactAttachmentIsSuppressed(t *testing.T) {
	response := `{
		"reply": "Let's keep the focus on what you control.",
		"event": {"type": "want.attachPrimaryContact", "payload": {"wantId": "w1", "contactId": "c1"}},
		"directnessCheck": {"isDirect": false, "failingReason": "no causal bearing"}
	}`
	orch, rec := newPipeline(t, response, nil)

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "attach my cousin to this goal"})

	assert.Equal(t, gate.OutcomeDirectnessSuppressed, result.Outcome)
	assert.False(t, result.Dispatched)
	assert.Empty(t, rec.audits)
}

func TestModelFailureDegradesToFallbackReply(t *testing.T) {
	orch, rec := newPipeline(t, "", errors.New("backend unreachable"))

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "hello"})

	assert.True(t, result.ModelFailed)
	assert.Equal(t, agent.FallbackReply, result.Reply)
	assert.False(t, result.Dispatched)
	assert.Empty(t, rec.audits)
}

func TestProseResponsePassesThroughWithoutEvents(t *testing.T) {
	orch, rec := newPipeline(t, "Just a plain conversational reply with no structure.", nil)

	result := orch.RunTurn(context.Background(), &agent.TurnRequest{Message: "how was my week"})

	assert.Equal(t, gate.OutcomeNoEvent, result.Outcome)
	assert.False(t, result.Dispatched)
	assert.Equal(t, "Just a plain conversational reply with no structure.", result.Reply)
	assert.Empty(t, rec.audits)
}
