package envelope

// The types below are the wire contract with the model backend. Field names
// are part of the contract and must not change.

// DomainEvent is a transient event raised by the model, consumed at most
// once per turn.
type DomainEvent struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// WantValidation is the model's self-reported Want/Should verdict for a
// want-creation event.
type WantValidation struct {
	IsValidWant bool   `json:"isValidWant"`
	Reason      string `json:"reason"`
}

// DirectnessCheck is the model's self-reported verdict on whether an
// attached contact has direct causal bearing on the want.
type DirectnessCheck struct {
	IsDirect      bool   `json:"isDirect"`
	FailingReason string `json:"failingReason"`
}

// GuardrailViolation reports a triggered guardrail. Blocked=true is an
// absolute veto over event dispatch for the turn.
type GuardrailViolation struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Blocked bool   `json:"blocked"`
}

// Envelope is the structured reply contract. Exactly one envelope exists per
// model invocation; absent sub-objects are nil.
type Envelope struct {
	Reply           string              `json:"reply"`
	Event           *DomainEvent        `json:"event,omitempty"`
	Validation      *WantValidation     `json:"validation,omitempty"`
	DirectnessCheck *DirectnessCheck    `json:"directnessCheck,omitempty"`
	Guardrail       *GuardrailViolation `json:"guardrail,omitempty"`
}
