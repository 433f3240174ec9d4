package memory

import (
	"testing"
	"time"
)

func TestGateStateGetOrCreate(t *testing.T) {
	repo := NewGateStateRepository(time.Hour)

	state := repo.GetOrCreate("s1")
	if state.SessionID != "s1" {
		t.Fatalf("expected session s1, got %s", state.SessionID)
	}
	if state.AcknowledgedKinds == nil {
		t.Fatal("expected acknowledged map to be initialized")
	}

	state.AcknowledgedKinds["should_policing"] = true
	repo.Save(state)

	again := repo.GetOrCreate("s1")
	if !again.AcknowledgedKinds["should_policing"] {
		t.Fatal("expected acknowledgment to persist for the session")
	}
}

func TestGateStateIsolatedPerSession(t *testing.T) {
	repo := NewGateStateRepository(time.Hour)

	a := repo.GetOrCreate("a")
	a.LastGuardrailKind = "medical"
	repo.Save(a)

	b := repo.GetOrCreate("b")
	if b.LastGuardrailKind != "" {
		t.Fatalf("expected fresh state for session b, got kind %q", b.LastGuardrailKind)
	}
}

func TestGateStateExpiry(t *testing.T) {
	repo := NewGateStateRepository(20 * time.Millisecond)

	state := repo.GetOrCreate("s1")
	state.ConsecutiveRejects = 3
	repo.Save(state)

	time.Sleep(40 * time.Millisecond)

	if _, found := repo.Get("s1"); found {
		t.Fatal("expected state to expire")
	}
}

func TestGateStateDelete(t *testing.T) {
	repo := NewGateStateRepository(time.Hour)
	repo.GetOrCreate("s1")
	repo.Delete("s1")

	if _, found := repo.Get("s1"); found {
		t.Fatal("expected state to be deleted")
	}
}
