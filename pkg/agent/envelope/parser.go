package envelope

import (
	"encoding/json"
	"strings"
)

// Parser turns raw model output into an Envelope. Recovery is an explicit
// ordered list of strategies; the last one always succeeds, so parsing never
// returns an error and the caller always gets a usable envelope.
type Parser struct {
	strategies []strategy
}

type strategy func(raw string) (*Envelope, bool)

// NewParser builds the standard three-tier parser: direct JSON parse, first
// brace-delimited object extraction, then plain-text fallback.
func NewParser() *Parser {
	return &Parser{
		strategies: []strategy{
			parseDirect,
			parseExtracted,
			parsePlainText,
		},
	}
}

// Parse runs the strategies in order and returns the first success.
func (p *Parser) Parse(raw string) *Envelope {
	for _, s := range p.strategies {
		if env, ok := s(raw); ok {
			return env
		}
	}
	// Unreachable: parsePlainText never fails. Kept as a hard floor.
	return &Envelope{Reply: strings.TrimSpace(raw)}
}

// rawEnvelope defers sub-object decoding so each field can be type-checked
// independently. A malformed sub-object is discarded, never propagated.
type rawEnvelope struct {
	Reply           json.RawMessage `json:"reply"`
	Event           json.RawMessage `json:"event"`
	Validation      json.RawMessage `json:"validation"`
	DirectnessCheck json.RawMessage `json:"directnessCheck"`
	Guardrail       json.RawMessage `json:"guardrail"`
}

func parseDirect(raw string) (*Envelope, bool) {
	return decodeObject(strings.TrimSpace(raw))
}

// parseExtracted locates the first balanced brace-delimited substring and
// tries to decode it. Models that wrap the object in prose or code fences
// land here.
func parseExtracted(raw string) (*Envelope, bool) {
	for start := strings.Index(raw, "{"); start != -1; {
		candidate, ok := balancedObject(raw[start:])
		if ok {
			if env, ok := decodeObject(candidate); ok {
				return env, true
			}
		}
		next := strings.Index(raw[start+1:], "{")
		if next == -1 {
			break
		}
		start += 1 + next
	}
	return nil, false
}

func parsePlainText(raw string) (*Envelope, bool) {
	return &Envelope{Reply: strings.TrimSpace(raw)}, true
}

// decodeObject parses candidate as an envelope object, type-checking every
// field on its own. Returns false when candidate is not a JSON object at all.
func decodeObject(candidate string) (*Envelope, bool) {
	if !strings.HasPrefix(strings.TrimSpace(candidate), "{") {
		return nil, false
	}

	var re rawEnvelope
	if err := json.Unmarshal([]byte(candidate), &re); err != nil {
		return nil, false
	}

	env := &Envelope{}

	if len(re.Reply) > 0 {
		var reply string
		if err := json.Unmarshal(re.Reply, &reply); err == nil {
			env.Reply = reply
		}
	}

	if len(re.Event) > 0 {
		var ev DomainEvent
		if err := json.Unmarshal(re.Event, &ev); err == nil && ev.Type != "" {
			env.Event = &ev
		}
	}

	if len(re.Validation) > 0 {
		var v WantValidation
		if err := json.Unmarshal(re.Validation, &v); err == nil {
			env.Validation = &v
		}
	}

	if len(re.DirectnessCheck) > 0 {
		var d DirectnessCheck
		if err := json.Unmarshal(re.DirectnessCheck, &d); err == nil {
			env.DirectnessCheck = &d
		}
	}

	if len(re.Guardrail) > 0 {
		var g GuardrailViolation
		if err := json.Unmarshal(re.Guardrail, &g); err == nil && g.Kind != "" {
			env.Guardrail = &g
		}
	}

	return env, true
}

// balancedObject returns the shortest prefix of s that forms a balanced
// JSON object, honouring string literals and escapes.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[:i+1], true
				}
			}
		}
	}
	return "", false
}
