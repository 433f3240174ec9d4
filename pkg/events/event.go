package events

import "time"

// Event is the contract for anything published on the message bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "want.create").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// AgentEvent wraps a domain event produced during a conversation turn,
// tagged with the session it came from.
type AgentEvent struct {
	Type       string
	SessionID  string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewAgentEvent(eventType, sessionID string, data map[string]interface{}) AgentEvent {
	return AgentEvent{
		Type:       eventType,
		SessionID:  sessionID,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func (e AgentEvent) EventType() string {
	return e.Type
}

func (e AgentEvent) Payload() map[string]interface{} {
	payload := make(map[string]interface{}, len(e.Data)+1)
	for k, v := range e.Data {
		payload[k] = v
	}
	payload["session_id"] = e.SessionID
	return payload
}

func (e AgentEvent) Timestamp() time.Time {
	return e.OccurredAt
}
