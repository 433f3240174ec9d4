package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GateState carries per-session validation state that must survive
// between turns but not between sessions. A non-blocking guardrail that
// fired once is not repeated until the state expires.
type GateState struct {
	SessionID          string
	AcknowledgedKinds  map[string]bool
	LastGuardrailKind  string
	LastGuardrailAt    time.Time
	ConsecutiveRejects int
}

type GateStateRepository struct {
	cache *cache.Cache
}

// NewGateStateRepository builds a session-scoped state store. Entries
// expire after ttl so a stale session cannot pin memory.
func NewGateStateRepository(ttl time.Duration) *GateStateRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	c := cache.New(ttl, 10*time.Minute)
	return &GateStateRepository{
		cache: c,
	}
}

func (r *GateStateRepository) Save(state *GateState) {
	r.cache.Set(state.SessionID, state, cache.DefaultExpiration)
}

func (r *GateStateRepository) Get(sessionID string) (*GateState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*GateState), true
	}
	return nil, false
}

// GetOrCreate returns the existing state or a fresh one for the session.
func (r *GateStateRepository) GetOrCreate(sessionID string) *GateState {
	if state, found := r.Get(sessionID); found {
		return state
	}
	state := &GateState{
		SessionID:         sessionID,
		AcknowledgedKinds: make(map[string]bool),
	}
	r.Save(state)
	return state
}

func (r *GateStateRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
