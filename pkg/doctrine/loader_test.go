package doctrine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	spec, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if spec.Version == "" {
		t.Error("default spec has no version")
	}
	if len(spec.Events) != 16 {
		t.Errorf("default spec has %d events, want 16", len(spec.Events))
	}
	if len(spec.Guardrails) != 4 {
		t.Errorf("default spec has %d guardrails, want 4", len(spec.Guardrails))
	}
}

func TestLoadFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doctrine.json")
	content := `{
		"version": "test-1",
		"identity": "a test coach",
		"chunk_delimiter": "\n\n",
		"corpus": "",
		"guardrails": [{"kind": "crisis", "description": "d", "canned_response": "r"}],
		"events": [{"type": "task.create", "aggregate": "task", "required_fields": ["title"]}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	spec, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	if spec.Version != "test-1" {
		t.Errorf("Version = %q, want test-1", spec.Version)
	}
	if def := spec.EventDef("task.create"); def == nil || def.Aggregate != "task" {
		t.Errorf("EventDef(task.create) = %+v", def)
	}
}

func TestLoadRejectsInvalidSpec(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing version", `{"identity": "x"}`},
		{"missing identity", `{"version": "1"}`},
		{"malformed json", `{not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load accepted an invalid spec")
			}
		})
	}
}
