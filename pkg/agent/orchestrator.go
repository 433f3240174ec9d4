package agent

import (
	"context"
	"log"
	"time"

	"ai-coaching-be/pkg/agent/dispatch"
	"ai-coaching-be/pkg/agent/envelope"
	"ai-coaching-be/pkg/agent/gate"
	"ai-coaching-be/pkg/agent/prompt"
	"ai-coaching-be/pkg/corpus"
	"ai-coaching-be/pkg/doctrine"
	"ai-coaching-be/pkg/llm"
)

// DefaultMaxChunks bounds how many doctrine excerpts one prompt carries.
const DefaultMaxChunks = 4

// FallbackReply is returned when the model backend fails or produces an
// empty reply. No code path surfaces a fault to the end user.
const FallbackReply = "Something went sideways on my end. Say that again and we'll pick it up."

// Message is one conversation turn. History is append-only and owned by the
// caller; the orchestrator only ever reads it.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// TurnRequest is the input of one conversation turn. Context is expected on
// the first turn of a history only; later turns send incremental text.
type TurnRequest struct {
	Message string
	Context *prompt.SituationContext
	History []Message
}

// TurnResult reports what the turn did. Reply is always set.
type TurnResult struct {
	Reply          string
	Outcome        gate.Outcome
	Guardrail      *envelope.GuardrailViolation
	Dispatched     bool
	DispatchedType string
	ModelFailed    bool
}

// Orchestrator composes one conversation turn: retrieval, prompt assembly,
// model invocation, contract parsing, policy gates, event dispatch. The model
// invocation is the sole suspension point; everything else is synchronous
// in-memory computation.
type Orchestrator struct {
	spec       *doctrine.Spec
	provider   llm.LLMProvider
	parser     *envelope.Parser
	gates      *gate.Pipeline
	dispatcher *dispatch.Dispatcher
	maxChunks  int
	logger     *log.Logger
}

// NewOrchestrator wires the per-turn pipeline. The spec is immutable for the
// orchestrator's lifetime.
func NewOrchestrator(
	spec *doctrine.Spec,
	provider llm.LLMProvider,
	dispatcher *dispatch.Dispatcher,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		spec:       spec,
		provider:   provider,
		parser:     envelope.NewParser(),
		gates:      gate.NewPipeline(logger),
		dispatcher: dispatcher,
		maxChunks:  DefaultMaxChunks,
		logger:     logger,
	}
}

// SetMaxChunks overrides the retrieval budget. Values below one are ignored.
func (o *Orchestrator) SetMaxChunks(n int) {
	if n > 0 {
		o.maxChunks = n
	}
}

// RunTurn executes one turn. It never returns an error: model failures and
// parse failures degrade to a textual reply with no side effects.
func (o *Orchestrator) RunTurn(ctx context.Context, req *TurnRequest) *TurnResult {
	// Retrieval is recomputed per invocation; chunks are never persisted.
	chunks := corpus.SplitIntoChunks(o.spec.Corpus, o.spec.ChunkDelimiter)
	relevant := corpus.RetrieveRelevant(req.Message, chunks, o.spec.DoctrineTerms, o.maxChunks)

	systemPrompt := prompt.BuildSystemPrompt(o.spec, relevant)

	// The first turn carries the full situational context; follow-ups send
	// incremental text only to bound payload growth.
	userContent := req.Message
	if len(req.History) == 0 {
		userContent = prompt.BuildUserMessage(req.Message, req.Context)
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, m := range req.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: userContent})

	raw, err := o.provider.Chat(ctx, messages)
	if err != nil {
		o.logger.Printf("[TURN] Model invocation failed: %v", err)
		return &TurnResult{Reply: FallbackReply, Outcome: gate.OutcomeNoEvent, ModelFailed: true}
	}

	env := o.parser.Parse(raw)
	res := o.gates.Evaluate(env)

	result := &TurnResult{
		Reply:     env.Reply,
		Outcome:   res.Outcome,
		Guardrail: res.Guardrail,
	}

	// An abandoned call must not cause dispatch.
	if res.Event != nil && ctx.Err() == nil {
		if err := o.dispatcher.Dispatch(ctx, res.Event); err != nil {
			o.logger.Printf("[TURN] Dispatch failed: %v", err)
		} else {
			result.Dispatched = true
			result.DispatchedType = res.Event.Type
		}
	}

	if result.Reply == "" {
		result.Reply = o.blockedReply(res)
	}

	return result
}

// blockedReply picks a non-empty reply when the model left it blank: the
// guardrail's canned response if one triggered, the generic fallback
// otherwise.
func (o *Orchestrator) blockedReply(res *gate.Result) string {
	if res.Guardrail != nil {
		if def := o.spec.GuardrailDef(res.Guardrail.Kind); def != nil && def.CannedResponse != "" {
			return def.CannedResponse
		}
	}
	return FallbackReply
}
