package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a membership domain event.
type Event interface {
	Meta() Metadata
}

// Metadata identifies an event and the user it is addressed to.
// Embedding it makes a struct an Event.
type Metadata struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`

	// RecipientID is uuid.Nil for events addressed to league admins as a group.
	RecipientID uuid.UUID `json:"recipient_id"`
}

// Meta returns the metadata itself.
func (m Metadata) Meta() Metadata {
	return m
}

// Addressed reports whether the event names a single recipient.
func (m Metadata) Addressed() bool {
	return m.RecipientID != uuid.Nil
}

// NewMetadata stamps a new event of the given type.
func NewMetadata(eventType string, aggregateID uuid.UUID, aggregateType string, recipient uuid.UUID) Metadata {
	return Metadata{
		ID:            uuid.New(),
		Type:          eventType,
		OccurredAt:    time.Now().UTC(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		RecipientID:   recipient,
	}
}
