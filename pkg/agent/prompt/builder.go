package prompt

import (
	"fmt"
	"strings"

	"ai-coaching-be/pkg/corpus"
	"ai-coaching-be/pkg/doctrine"
)

// SituationContext carries what the user currently sees in the client. It is
// serialized into the first turn of a conversation only; later turns send
// incremental text.
type SituationContext struct {
	SelectedContactID string `json:"selected_contact_id,omitempty"`
	SelectedWantID    string `json:"selected_want_id,omitempty"`
	DocumentContent   string `json:"document_content,omitempty"`
	ScopeSummary      string `json:"scope_summary,omitempty"`
}

// IsZero reports whether no situational context is set.
func (sc *SituationContext) IsZero() bool {
	return sc == nil || (sc.SelectedContactID == "" && sc.SelectedWantID == "" &&
		sc.DocumentContent == "" && sc.ScopeSummary == "")
}

// BuildSystemPrompt assembles the model's instruction payload from the
// doctrine spec and the retrieved corpus chunks. It is a pure function: the
// section order is fixed and identical inputs always produce an identical
// prompt, which downstream parser and gate tests rely on.
func BuildSystemPrompt(spec *doctrine.Spec, chunks []corpus.Chunk) string {
	var b strings.Builder

	writeSection(&b, "identity", spec.Identity)
	writeRules(&b, "behavior_constraints", spec.BehaviorConstraints)
	writeRules(&b, "doctrine_use", spec.DoctrineUseRules)
	writeRules(&b, "output_restrictions", spec.OutputRestrictions)
	writeRules(&b, "doctrinal_rules", spec.DoctrinalRules)
	writeRules(&b, "core_reasoning", spec.CoreReasoningRules)
	writeRules(&b, "want_validation", spec.WantValidationRules)
	writeRules(&b, "directness", spec.DirectnessRules)
	writeRules(&b, "guardrail_enforcement", spec.GuardrailEnforcementRules)
	writeGuardrails(&b, spec.Guardrails)
	writeRules(&b, "context_usage", spec.ContextUsageRules)
	writeRules(&b, "event_generation", spec.EventGenerationRules)
	writeTopics(&b, spec.ForbiddenTopics, spec.AllowedTopics)
	writeChunks(&b, chunks)
	writeOutputSchema(&b)
	writeEventCatalog(&b, spec.Events)

	return b.String()
}

// BuildUserMessage merges the free-text utterance with the serialized
// situational context. With no context the utterance passes through as-is.
func BuildUserMessage(message string, sc *SituationContext) string {
	if sc.IsZero() {
		return message
	}

	var b strings.Builder
	b.WriteString("<situational_context>\n")
	if sc.SelectedContactID != "" {
		fmt.Fprintf(&b, "selected_contact_id: %s\n", sc.SelectedContactID)
	}
	if sc.SelectedWantID != "" {
		fmt.Fprintf(&b, "selected_want_id: %s\n", sc.SelectedWantID)
	}
	if sc.ScopeSummary != "" {
		fmt.Fprintf(&b, "scope_summary: %s\n", sc.ScopeSummary)
	}
	if sc.DocumentContent != "" {
		b.WriteString("current_document:\n")
		b.WriteString(sc.DocumentContent)
		b.WriteString("\n")
	}
	b.WriteString("</situational_context>\n\n")
	b.WriteString(message)
	return b.String()
}

func writeSection(b *strings.Builder, tag, content string) {
	fmt.Fprintf(b, "<%s>\n%s\n</%s>\n\n", tag, content, tag)
}

func writeRules(b *strings.Builder, tag string, rules []string) {
	fmt.Fprintf(b, "<%s>\n", tag)
	for i, rule := range rules {
		fmt.Fprintf(b, "%d. %s\n", i+1, rule)
	}
	fmt.Fprintf(b, "</%s>\n\n", tag)
}

func writeGuardrails(b *strings.Builder, guardrails []doctrine.GuardrailDef) {
	b.WriteString("<guardrails>\n")
	for _, g := range guardrails {
		fmt.Fprintf(b, "- kind: %s\n", g.Kind)
		fmt.Fprintf(b, "  description: %s\n", g.Description)
		fmt.Fprintf(b, "  trigger_phrases: %s\n", strings.Join(g.TriggerPhrases, "; "))
		fmt.Fprintf(b, "  canned_response: %s\n", g.CannedResponse)
		fmt.Fprintf(b, "  blocked: %t\n", g.Blocked)
	}
	b.WriteString("</guardrails>\n\n")
}

func writeTopics(b *strings.Builder, forbidden, allowed []string) {
	b.WriteString("<topics>\n")
	fmt.Fprintf(b, "forbidden: %s\n", strings.Join(forbidden, ", "))
	fmt.Fprintf(b, "allowed: %s\n", strings.Join(allowed, ", "))
	b.WriteString("</topics>\n\n")
}

func writeChunks(b *strings.Builder, chunks []corpus.Chunk) {
	if len(chunks) == 0 {
		return
	}
	b.WriteString("<doctrine_excerpts>\n")
	for i, c := range chunks {
		fmt.Fprintf(b, "--- EXCERPT %d ---\n%s\n", i+1, c.Text)
	}
	b.WriteString("</doctrine_excerpts>\n\n")
}

func writeOutputSchema(b *strings.Builder) {
	b.WriteString("<output_schema>\n")
	b.WriteString("Respond with exactly one JSON object of this shape:\n")
	b.WriteString(`{
  "reply": "<your reply to the user, plain text>",
  "event": {"type": "<catalog tag>", "payload": {<field names from the catalog>}},
  "validation": {"isValidWant": <bool>, "reason": "<why>"},
  "directnessCheck": {"isDirect": <bool>, "failingReason": "<why>"},
  "guardrail": {"kind": "<catalog kind>", "message": "<what triggered>", "blocked": <bool>}
}`)
	b.WriteString("\n")
	b.WriteString("\"reply\" is always required. All other fields are omitted unless applicable.\n")
	b.WriteString("Include \"validation\" whenever event.type is want.create.\n")
	b.WriteString("Include \"directnessCheck\" whenever event.type is want.attachPrimaryContact.\n")
	b.WriteString("</output_schema>\n\n")
}

func writeEventCatalog(b *strings.Builder, events []doctrine.EventDef) {
	b.WriteString("<event_catalog>\n")
	for _, ev := range events {
		fmt.Fprintf(b, "- %s (aggregate: %s) required: [%s]",
			ev.Type, ev.Aggregate, strings.Join(ev.RequiredFields, ", "))
		if len(ev.OptionalFields) > 0 {
			fmt.Fprintf(b, " optional: [%s]", strings.Join(ev.OptionalFields, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("</event_catalog>\n")
}
