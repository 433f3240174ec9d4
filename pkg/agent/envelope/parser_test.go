package envelope

import (
	"encoding/json"
	"testing"
)

func TestParseDirect(t *testing.T) {
	p := NewParser()

	raw := `{"reply":"ok","event":{"type":"task.create","payload":{"title":"Call Bob","contactId":"c1"}}}`
	env := p.Parse(raw)

	if env.Reply != "ok" {
		t.Errorf("Reply = %q, want %q", env.Reply, "ok")
	}
	if env.Event == nil {
		t.Fatal("Event is nil")
	}
	if env.Event.Type != "task.create" {
		t.Errorf("Event.Type = %q", env.Event.Type)
	}
	if env.Event.Payload["title"] != "Call Bob" || env.Event.Payload["contactId"] != "c1" {
		t.Errorf("Payload = %v", env.Event.Payload)
	}
	if env.Validation != nil || env.DirectnessCheck != nil || env.Guardrail != nil {
		t.Error("absent sub-objects must stay nil")
	}
}

func TestParseRoundTrip(t *testing.T) {
	p := NewParser()

	original := &Envelope{
		Reply: "noted",
		Event: &DomainEvent{Type: "want.create", Payload: map[string]any{"title": "Run a marathon"}},
		Validation: &WantValidation{
			IsValidWant: false,
			Reason:      "externally obligated",
		},
		DirectnessCheck: &DirectnessCheck{IsDirect: true},
		Guardrail:       &GuardrailViolation{Kind: "disrespect", Message: "blocked", Blocked: true},
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	env := p.Parse(string(raw))
	if env.Reply != original.Reply {
		t.Errorf("Reply = %q", env.Reply)
	}
	if env.Event == nil || env.Event.Type != original.Event.Type {
		t.Errorf("Event = %+v", env.Event)
	}
	if env.Validation == nil || env.Validation.IsValidWant || env.Validation.Reason != "externally obligated" {
		t.Errorf("Validation = %+v", env.Validation)
	}
	if env.DirectnessCheck == nil || !env.DirectnessCheck.IsDirect {
		t.Errorf("DirectnessCheck = %+v", env.DirectnessCheck)
	}
	if env.Guardrail == nil || !env.Guardrail.Blocked || env.Guardrail.Kind != "disrespect" {
		t.Errorf("Guardrail = %+v", env.Guardrail)
	}
}

func TestParseRecoveryFromProse(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name      string
		raw       string
		wantReply string
		wantEvent bool
	}{
		{
			name:      "object wrapped in prose",
			raw:       "Sure! Here is the result:\n{\"reply\":\"done\",\"event\":{\"type\":\"note.create\",\"payload\":{\"content\":\"x\"}}}\nHope that helps.",
			wantReply: "done",
			wantEvent: true,
		},
		{
			name:      "object in code fence",
			raw:       "```json\n{\"reply\":\"fenced\"}\n```",
			wantReply: "fenced",
			wantEvent: false,
		},
		{
			name:      "nested braces inside strings",
			raw:       "prefix {\"reply\":\"curly } brace { inside\"} suffix",
			wantReply: "curly } brace { inside",
			wantEvent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := p.Parse(tt.raw)
			if env.Reply != tt.wantReply {
				t.Errorf("Reply = %q, want %q", env.Reply, tt.wantReply)
			}
			if (env.Event != nil) != tt.wantEvent {
				t.Errorf("Event present = %v, want %v", env.Event != nil, tt.wantEvent)
			}
		})
	}
}

func TestParseTotalFallback(t *testing.T) {
	p := NewParser()

	env := p.Parse("  I simply cannot produce JSON today.  ")
	if env.Reply != "I simply cannot produce JSON today." {
		t.Errorf("Reply = %q", env.Reply)
	}
	if env.Event != nil || env.Validation != nil || env.DirectnessCheck != nil || env.Guardrail != nil {
		t.Error("fallback envelope must carry no sub-objects")
	}
}

func TestParseMalformedSubObjectsDiscarded(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "event is a string", raw: `{"reply":"ok","event":"task.create"}`},
		{name: "event missing type", raw: `{"reply":"ok","event":{"payload":{}}}`},
		{name: "validation wrong type", raw: `{"reply":"ok","validation":{"isValidWant":"yes"}}`},
		{name: "directness is number", raw: `{"reply":"ok","directnessCheck":7}`},
		{name: "guardrail missing kind", raw: `{"reply":"ok","guardrail":{"blocked":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := p.Parse(tt.raw)
			if env.Reply != "ok" {
				t.Errorf("Reply = %q, want ok", env.Reply)
			}
			if env.Event != nil || env.Validation != nil || env.DirectnessCheck != nil || env.Guardrail != nil {
				t.Errorf("malformed sub-object survived: %+v", env)
			}
		})
	}
}

func TestParseUnparseableObjectThenFallback(t *testing.T) {
	p := NewParser()

	// Braces present but never balanced: must degrade to plain text.
	raw := `the set {1, 2, 3 is unbounded`
	env := p.Parse(raw)
	if env.Reply != raw {
		t.Errorf("Reply = %q, want raw text", env.Reply)
	}
	if env.Event != nil {
		t.Error("no event expected")
	}
}
