package gate

import (
	"log"

	"ai-coaching-be/pkg/agent/envelope"
	"ai-coaching-be/pkg/doctrine"
)

// Outcome classifies what the pipeline decided for the turn.
type Outcome string

const (
	// OutcomePass lets the event through to the dispatcher unchanged.
	OutcomePass Outcome = "PASS"
	// OutcomeNoEvent means the envelope carried no event at all.
	OutcomeNoEvent Outcome = "NO_EVENT"
	// OutcomeGuardrailBlocked vetoes dispatch for the whole turn; the caller
	// surfaces an acknowledgment-gate state to the user.
	OutcomeGuardrailBlocked Outcome = "GUARDRAIL_BLOCKED"
	// OutcomeWantRejected replaced a want-creation event with a
	// rejected-should record.
	OutcomeWantRejected Outcome = "WANT_REJECTED"
	// OutcomeDirectnessSuppressed dropped a contact-attachment event.
	OutcomeDirectnessSuppressed Outcome = "DIRECTNESS_SUPPRESSED"
)

// Result is the decision of the pipeline for one envelope. Event is the
// event to dispatch (possibly a redirect); it is nil whenever dispatch must
// not happen.
type Result struct {
	Outcome   Outcome
	Event     *envelope.DomainEvent
	Guardrail *envelope.GuardrailViolation
	Reason    string
}

// Pipeline runs the policy gates over an envelope in fixed priority order:
// guardrail first, then want-validity, then directness. Safety dominates
// policy: a blocked guardrail short-circuits everything else.
type Pipeline struct {
	gates  []gateFunc
	logger *log.Logger
}

type gateFunc func(env *envelope.Envelope) *Result

// NewPipeline builds the standard gate order.
func NewPipeline(logger *log.Logger) *Pipeline {
	p := &Pipeline{logger: logger}
	p.gates = []gateFunc{
		p.guardrailGate,
		p.wantValidityGate,
		p.directnessGate,
	}
	return p
}

// Evaluate runs the gates in order and returns the first decisive result,
// or a pass-through of the envelope's event.
func (p *Pipeline) Evaluate(env *envelope.Envelope) *Result {
	for _, gate := range p.gates {
		if res := gate(env); res != nil {
			return res
		}
	}

	if env.Event == nil {
		return &Result{Outcome: OutcomeNoEvent}
	}
	return &Result{Outcome: OutcomePass, Event: env.Event}
}

// guardrailGate: blocked=true is an absolute veto, independent of event
// contents. Non-blocking guardrails are informational and do not stop the
// later gates.
func (p *Pipeline) guardrailGate(env *envelope.Envelope) *Result {
	if env.Guardrail == nil || !env.Guardrail.Blocked {
		return nil
	}
	p.logger.Printf("[GATE] Guardrail %q blocked the turn: %s", env.Guardrail.Kind, env.Guardrail.Message)
	return &Result{
		Outcome:   OutcomeGuardrailBlocked,
		Guardrail: env.Guardrail,
		Reason:    env.Guardrail.Message,
	}
}

// wantValidityGate fires only on want-creation events. An invalid want is
// never created; the event is redirected to a rejected-should record so the
// refusal leaves a trace.
func (p *Pipeline) wantValidityGate(env *envelope.Envelope) *Result {
	if env.Event == nil || env.Event.Type != doctrine.EventWantCreate {
		return nil
	}
	if env.Validation == nil || env.Validation.IsValidWant {
		return nil
	}

	title, _ := env.Event.Payload["title"].(string)
	p.logger.Printf("[GATE] Want %q rejected as a Should: %s", title, env.Validation.Reason)

	return &Result{
		Outcome: OutcomeWantRejected,
		Event: &envelope.DomainEvent{
			Type: doctrine.EventWantRejectShould,
			Payload: map[string]any{
				"title":  title,
				"reason": env.Validation.Reason,
			},
		},
		Reason: env.Validation.Reason,
	}
}

// directnessGate fires only on contact-attachment events. A failed check
// drops the attachment entirely; nothing is ever partially applied.
func (p *Pipeline) directnessGate(env *envelope.Envelope) *Result {
	if env.Event == nil || env.Event.Type != doctrine.EventWantAttachContact {
		return nil
	}
	if env.DirectnessCheck == nil || env.DirectnessCheck.IsDirect {
		return nil
	}

	p.logger.Printf("[GATE] Contact attachment suppressed: %s", env.DirectnessCheck.FailingReason)
	return &Result{
		Outcome: OutcomeDirectnessSuppressed,
		Reason:  env.DirectnessCheck.FailingReason,
	}
}
