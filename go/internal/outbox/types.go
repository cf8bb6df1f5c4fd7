package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/models"
)

// Publisher pushes a committed roster event to the message bus.
type Publisher interface {
	Publish(ctx context.Context, event models.RosterEvent) error
}

// Envelope is the JSON body of every message on roster.events.*
type Envelope struct {
	EventID   uuid.UUID        `json:"eventId"`
	EventType models.EventType `json:"eventType"`
	TeamID    uuid.UUID        `json:"teamId"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   json.RawMessage  `json:"payload"`
}

func NewEnvelope(event models.RosterEvent, now time.Time) Envelope {
	return Envelope{
		EventID:   event.ID,
		EventType: event.EventType,
		TeamID:    event.TeamID,
		Timestamp: now.UTC(),
		Payload:   event.Payload,
	}
}
