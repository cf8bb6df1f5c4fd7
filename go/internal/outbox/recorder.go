package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/outbox/db"
)

// EventWriter is what Record needs to persist an event. *db.Queries bound to
// the caller's transaction satisfies it.
type EventWriter interface {
	InsertEvent(ctx context.Context, arg db.InsertEventParams) error
}

// Record marshals payload and appends a roster event to the outbox. Callers
// pass a writer bound to the same transaction as the change being recorded so
// the event commits or rolls back with it.
func Record(ctx context.Context, w EventWriter, teamID uuid.UUID, eventType models.EventType, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	if err := w.InsertEvent(ctx, db.InsertEventParams{
		ID:        uuid.New(),
		TeamID:    teamID,
		EventType: string(eventType),
		Payload:   data,
	}); err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}
