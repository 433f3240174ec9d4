package gate

import (
	"io"
	"log"
	"testing"

	"ai-coaching-be/pkg/agent/envelope"
	"ai-coaching-be/pkg/doctrine"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(log.New(io.Discard, "", 0))
}

func TestGuardrailBlockVetoesEverything(t *testing.T) {
	p := newTestPipeline()

	env := &envelope.Envelope{
		Reply:     "blocked turn",
		Guardrail: &envelope.GuardrailViolation{Kind: "disrespect", Message: "abuse", Blocked: true},
		Event: &envelope.DomainEvent{
			Type:    doctrine.EventWantCreate,
			Payload: map[string]any{"title": "Perfectly valid want"},
		},
		Validation: &envelope.WantValidation{IsValidWant: true},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomeGuardrailBlocked {
		t.Fatalf("Outcome = %s, want GUARDRAIL_BLOCKED", res.Outcome)
	}
	if res.Event != nil {
		t.Error("blocked turn must carry no dispatchable event")
	}
	if res.Guardrail == nil || res.Guardrail.Kind != "disrespect" {
		t.Errorf("Guardrail = %+v", res.Guardrail)
	}
}

func TestNonBlockingGuardrailDoesNotStopDispatch(t *testing.T) {
	p := newTestPipeline()

	env := &envelope.Envelope{
		Guardrail: &envelope.GuardrailViolation{Kind: "medical", Blocked: false},
		Event:     &envelope.DomainEvent{Type: doctrine.EventNoteCreate, Payload: map[string]any{"content": "x"}},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomePass {
		t.Fatalf("Outcome = %s, want PASS", res.Outcome)
	}
	if res.Event == nil || res.Event.Type != doctrine.EventNoteCreate {
		t.Errorf("Event = %+v", res.Event)
	}
}

func TestWantValidityRedirect(t *testing.T) {
	p := newTestPipeline()

	env := &envelope.Envelope{
		Event: &envelope.DomainEvent{
			Type:    doctrine.EventWantCreate,
			Payload: map[string]any{"title": "Get promoted for my parents"},
		},
		Validation: &envelope.WantValidation{IsValidWant: false, Reason: "externally obligated"},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomeWantRejected {
		t.Fatalf("Outcome = %s, want WANT_REJECTED", res.Outcome)
	}
	if res.Event == nil || res.Event.Type != doctrine.EventWantRejectShould {
		t.Fatalf("redirect Event = %+v", res.Event)
	}
	if res.Event.Payload["title"] != "Get promoted for my parents" {
		t.Errorf("redirect lost the title: %v", res.Event.Payload)
	}
	if res.Event.Payload["reason"] != "externally obligated" {
		t.Errorf("redirect lost the reason: %v", res.Event.Payload)
	}
}

func TestWantValidityGateScope(t *testing.T) {
	p := newTestPipeline()

	// isValidWant=false must not affect non-creation events.
	env := &envelope.Envelope{
		Event:      &envelope.DomainEvent{Type: doctrine.EventWantUpdate, Payload: map[string]any{"wantId": "w1"}},
		Validation: &envelope.WantValidation{IsValidWant: false, Reason: "irrelevant here"},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomePass {
		t.Errorf("Outcome = %s, want PASS", res.Outcome)
	}
}

func TestDirectnessSuppression(t *testing.T) {
	p := newTestPipeline()

	env := &envelope.Envelope{
		Event: &envelope.DomainEvent{
			Type:    doctrine.EventWantAttachContact,
			Payload: map[string]any{"wantId": "w1", "contactId": "c1"},
		},
		DirectnessCheck: &envelope.DirectnessCheck{IsDirect: false, FailingReason: "merely inspirational"},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomeDirectnessSuppressed {
		t.Fatalf("Outcome = %s, want DIRECTNESS_SUPPRESSED", res.Outcome)
	}
	if res.Event != nil {
		t.Error("suppressed attachment must not dispatch")
	}
	if res.Reason != "merely inspirational" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestDirectnessGateScope(t *testing.T) {
	p := newTestPipeline()

	env := &envelope.Envelope{
		Event:           &envelope.DomainEvent{Type: doctrine.EventTaskCreate, Payload: map[string]any{"title": "Call Bob"}},
		DirectnessCheck: &envelope.DirectnessCheck{IsDirect: false, FailingReason: "not an attachment"},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomePass {
		t.Errorf("Outcome = %s, want PASS", res.Outcome)
	}
}

func TestNoEvent(t *testing.T) {
	p := newTestPipeline()

	res := p.Evaluate(&envelope.Envelope{Reply: "just chatting"})
	if res.Outcome != OutcomeNoEvent {
		t.Errorf("Outcome = %s, want NO_EVENT", res.Outcome)
	}
	if res.Event != nil {
		t.Error("no event expected")
	}
}

func TestMissingSelfChecksPassThrough(t *testing.T) {
	p := newTestPipeline()

	// Absent validation/directness sub-objects gate nothing: the gates fire
	// on explicit false only.
	env := &envelope.Envelope{
		Event: &envelope.DomainEvent{Type: doctrine.EventWantCreate, Payload: map[string]any{"title": "Learn violin"}},
	}

	res := p.Evaluate(env)
	if res.Outcome != OutcomePass {
		t.Errorf("Outcome = %s, want PASS", res.Outcome)
	}
}
