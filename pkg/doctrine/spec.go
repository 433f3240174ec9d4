package doctrine

// Event type tags. The catalog is closed: the dispatcher only acts on tags
// listed here, anything else is logged and skipped.
const (
	EventTaskCreate         = "task.create"
	EventTaskUpdate         = "task.update"
	EventNoteCreate         = "note.create"
	EventInteractionCreate  = "interaction.create"
	EventWantCreate         = "want.create"
	EventWantUpdate         = "want.update"
	EventWantAddStep        = "want.addStep"
	EventWantAddMetricType  = "want.addMetricType"
	EventWantLogMetricValue = "want.logMetricValue"
	EventWantLogMetrics     = "want.logMetrics"
	EventWantLogIteration   = "want.logIteration"
	EventWantAttachContact  = "want.attachPrimaryContact"
	EventWantDetachContact  = "want.detachPrimaryContact"
	EventWantRejectShould   = "want.createRejectedShould"
	EventScopeLogIteration  = "scope.logIterationEntry"
	EventScopeAddNote       = "scope.addDoctrineNote"
)

// GuardrailDef describes one entry of the closed guardrail catalog.
type GuardrailDef struct {
	Kind           string   `json:"kind"`
	Description    string   `json:"description"`
	TriggerPhrases []string `json:"trigger_phrases"`
	CannedResponse string   `json:"canned_response"`
	Blocked        bool     `json:"blocked"`
}

// EventDef describes one entry of the closed event catalog: the tag, the
// aggregate it targets and the payload field names the model must emit.
type EventDef struct {
	Type           string   `json:"type"`
	Aggregate      string   `json:"aggregate"`
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields,omitempty"`
}

// Spec is the versioned doctrine configuration. It is loaded once at
// bootstrap and treated as immutable for the lifetime of the process; the
// pipeline only ever reads it.
type Spec struct {
	Version string `json:"version"`

	Identity            string   `json:"identity"`
	BehaviorConstraints []string `json:"behavior_constraints"`
	DoctrineUseRules    []string `json:"doctrine_use_rules"`
	OutputRestrictions  []string `json:"output_restrictions"`
	DoctrinalRules      []string `json:"doctrinal_rules"`

	CoreReasoningRules        []string `json:"core_reasoning_rules"`
	WantValidationRules       []string `json:"want_validation_rules"`
	DirectnessRules           []string `json:"directness_rules"`
	GuardrailEnforcementRules []string `json:"guardrail_enforcement_rules"`
	ContextUsageRules         []string `json:"context_usage_rules"`
	EventGenerationRules      []string `json:"event_generation_rules"`

	Guardrails []GuardrailDef `json:"guardrails"`
	Events     []EventDef     `json:"events"`

	ForbiddenTopics []string `json:"forbidden_topics"`
	AllowedTopics   []string `json:"allowed_topics"`

	// DoctrineTerms are the fixed vocabulary terms that boost retrieval
	// scoring when present in both query and chunk.
	DoctrineTerms []string `json:"doctrine_terms"`

	Corpus         string `json:"corpus"`
	ChunkDelimiter string `json:"chunk_delimiter"`
}

// EventDef returns the catalog entry for the given type tag, or nil if the
// tag is not part of the catalog.
func (s *Spec) EventDef(eventType string) *EventDef {
	for i := range s.Events {
		if s.Events[i].Type == eventType {
			return &s.Events[i]
		}
	}
	return nil
}

// GuardrailDef returns the catalog entry for the given kind, or nil.
func (s *Spec) GuardrailDef(kind string) *GuardrailDef {
	for i := range s.Guardrails {
		if s.Guardrails[i].Kind == kind {
			return &s.Guardrails[i]
		}
	}
	return nil
}
