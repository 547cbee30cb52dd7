package billing

import "time"

// ProcessedEvent records a provider webhook event that has been fully
// handled. Rows are write-once: the presence of an event ID means every
// side effect of that event has been committed, so replays can be
// acknowledged without touching anything else.
type ProcessedEvent struct {
	id          uint
	eventID     string
	eventType   string
	payload     []byte
	processedAt time.Time
}

// NewProcessedEvent creates a ledger entry for a handled event. The raw
// provider payload is kept alongside for auditing and manual replay.
func NewProcessedEvent(eventID, eventType string, payload []byte) (*ProcessedEvent, error) {
	if eventID == "" {
		return nil, ErrEventIDRequired
	}

	return &ProcessedEvent{
		eventID:     eventID,
		eventType:   eventType,
		payload:     payload,
		processedAt: time.Now(),
	}, nil
}

// ReconstructProcessedEvent rebuilds a ledger entry from persistence.
func ReconstructProcessedEvent(id uint, eventID, eventType string, payload []byte, processedAt time.Time) *ProcessedEvent {
	return &ProcessedEvent{
		id:          id,
		eventID:     eventID,
		eventType:   eventType,
		payload:     payload,
		processedAt: processedAt,
	}
}

// ID returns the internal row ID.
func (e *ProcessedEvent) ID() uint {
	return e.id
}

// EventID returns the provider event identifier.
func (e *ProcessedEvent) EventID() string {
	return e.eventID
}

// EventType returns the provider event type.
func (e *ProcessedEvent) EventType() string {
	return e.eventType
}

// Payload returns the raw provider payload.
func (e *ProcessedEvent) Payload() []byte {
	return e.payload
}

// ProcessedAt returns when the event was handled.
func (e *ProcessedEvent) ProcessedAt() time.Time {
	return e.processedAt
}
