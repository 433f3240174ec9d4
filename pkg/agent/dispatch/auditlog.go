package dispatch

import (
	"context"
	"sync"
)

// MemoryAuditLog is an in-process AuditLog with an explicit lifecycle:
// construct one per session, reset it between tests. Nothing in this package
// keeps package-level state.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func NewMemoryAuditLog() *MemoryAuditLog {
	return &MemoryAuditLog{}
}

func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

// Entries returns a copy of the recorded entries in order.
func (l *MemoryAuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reset clears the log.
func (l *MemoryAuditLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
