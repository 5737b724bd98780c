package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONSULTATION_FINALIZED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Consultation event types, published on subject "events.<TYPE>"
const (
	TypeConsultationFinalized = "CONSULTATION_FINALIZED"
	TypeConsultationNoMatch   = "CONSULTATION_NO_MATCH"
	TypeKnowledgeEntryMissing = "KNOWLEDGE_ENTRY_MISSING"
)

// SubjectPrefix is prepended to the event type to build the NATS subject
const SubjectPrefix = "events."

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Subject returns the NATS subject for an event type
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}
