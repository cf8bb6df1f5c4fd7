package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a roster change recorded in the outbox
type EventType string

const (
	EventTeamCreated         EventType = "team.created"
	EventTeamUpdated         EventType = "team.updated"
	EventTeamDeleted         EventType = "team.deleted"
	EventPlayerCreated       EventType = "player.created"
	EventPlayerUpdated       EventType = "player.updated"
	EventPlayerDeleted       EventType = "player.deleted"
	EventBattingOrderUpdated EventType = "batting_order.updated"
	EventCaptainChanged      EventType = "captain.changed"
)

// RosterEvent is a change to a team's roster, written to the outbox in the
// same transaction as the change itself
type RosterEvent struct {
	ID        uuid.UUID       `json:"id"`
	TeamID    uuid.UUID       `json:"team_id"`
	EventType EventType       `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}
