package doctrine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a doctrine spec. With an empty path the built-in default is
// returned; otherwise the JSON file at path is loaded and validated. The
// returned spec must be treated as immutable.
func Load(path string) (*Spec, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read doctrine spec: %w", err)
	}

	var spec Spec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse doctrine spec: %w", err)
	}

	if err := validate(&spec); err != nil {
		return nil, fmt.Errorf("invalid doctrine spec %q: %w", path, err)
	}

	return &spec, nil
}

func validate(spec *Spec) error {
	if spec.Version == "" {
		return fmt.Errorf("missing version")
	}
	if spec.Identity == "" {
		return fmt.Errorf("missing identity")
	}
	if len(spec.Events) == 0 {
		return fmt.Errorf("empty event catalog")
	}
	if spec.ChunkDelimiter == "" {
		return fmt.Errorf("missing chunk_delimiter")
	}

	seen := make(map[string]bool, len(spec.Events))
	for _, ev := range spec.Events {
		if ev.Type == "" {
			return fmt.Errorf("event catalog entry with empty type")
		}
		if seen[ev.Type] {
			return fmt.Errorf("duplicate event type %q", ev.Type)
		}
		seen[ev.Type] = true
	}

	for _, g := range spec.Guardrails {
		if g.Kind == "" {
			return fmt.Errorf("guardrail with empty kind")
		}
	}

	return nil
}
