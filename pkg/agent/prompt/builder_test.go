package prompt

import (
	"strings"
	"testing"

	"ai-coaching-be/pkg/corpus"
	"ai-coaching-be/pkg/doctrine"
)

func TestBuildSystemPromptDeterministic(t *testing.T) {
	spec := doctrine.Default()
	chunks := corpus.SplitIntoChunks(spec.Corpus, spec.ChunkDelimiter)

	a := BuildSystemPrompt(spec, chunks)
	b := BuildSystemPrompt(spec, chunks)
	if a != b {
		t.Fatal("identical inputs produced different prompts")
	}
}

func TestBuildSystemPromptSectionOrder(t *testing.T) {
	spec := doctrine.Default()
	chunks := []corpus.Chunk{{Index: 0, Text: "The apex frame is the stance from which coaching proceeds."}}

	got := BuildSystemPrompt(spec, chunks)

	ordered := []string{
		"<identity>",
		"<behavior_constraints>",
		"<doctrine_use>",
		"<output_restrictions>",
		"<doctrinal_rules>",
		"<core_reasoning>",
		"<want_validation>",
		"<directness>",
		"<guardrail_enforcement>",
		"<guardrails>",
		"<context_usage>",
		"<event_generation>",
		"<topics>",
		"<doctrine_excerpts>",
		"<output_schema>",
		"<event_catalog>",
	}

	last := -1
	for _, marker := range ordered {
		idx := strings.Index(got, marker)
		if idx == -1 {
			t.Fatalf("section %s missing from prompt", marker)
		}
		if idx < last {
			t.Errorf("section %s out of order", marker)
		}
		last = idx
	}
}

func TestBuildSystemPromptContent(t *testing.T) {
	spec := doctrine.Default()
	got := BuildSystemPrompt(spec, nil)

	if strings.Contains(got, "<doctrine_excerpts>") {
		t.Error("no retrieved chunks: excerpt section must be omitted")
	}
	if !strings.Contains(got, "want.create") || !strings.Contains(got, "want.attachPrimaryContact") {
		t.Error("event catalog is incomplete")
	}
	for _, g := range spec.Guardrails {
		if !strings.Contains(got, "kind: "+g.Kind) {
			t.Errorf("guardrail %q missing", g.Kind)
		}
	}
}

func TestBuildUserMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		sc      *SituationContext
		want    []string
		exact   string
	}{
		{
			name:    "nil context passes through",
			message: "hello",
			sc:      nil,
			exact:   "hello",
		},
		{
			name:    "empty context passes through",
			message: "hello",
			sc:      &SituationContext{},
			exact:   "hello",
		},
		{
			name:    "full context serialized",
			message: "what should I do next?",
			sc: &SituationContext{
				SelectedContactID: "c1",
				SelectedWantID:    "w9",
				DocumentContent:   "draft of my plan",
			},
			want: []string{
				"<situational_context>",
				"selected_contact_id: c1",
				"selected_want_id: w9",
				"draft of my plan",
				"what should I do next?",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildUserMessage(tt.message, tt.sc)
			if tt.exact != "" && got != tt.exact {
				t.Fatalf("got %q, want %q", got, tt.exact)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("missing %q in %q", w, got)
				}
			}
		})
	}
}
