package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/outbox/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	events []db.InsertEventParams
	err    error
}

func (w *captureWriter) InsertEvent(ctx context.Context, arg db.InsertEventParams) error {
	if w.err != nil {
		return w.err
	}
	w.events = append(w.events, arg)
	return nil
}

func TestRecord(t *testing.T) {
	w := &captureWriter{}
	teamID := uuid.New()

	err := Record(context.Background(), w, teamID, models.EventCaptainChanged, map[string]string{"player_id": "p1"})
	require.NoError(t, err)
	require.Len(t, w.events, 1)

	ev := w.events[0]
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, teamID, ev.TeamID)
	assert.Equal(t, "captain.changed", ev.EventType)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "p1", payload["player_id"])
}

func TestRecordPropagatesWriteErrors(t *testing.T) {
	w := &captureWriter{err: errors.New("tx aborted")}

	err := Record(context.Background(), w, uuid.New(), models.EventTeamDeleted, struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team.deleted")
	assert.Contains(t, err.Error(), "tx aborted")
}

func TestRecordRejectsUnmarshalablePayload(t *testing.T) {
	w := &captureWriter{}

	err := Record(context.Background(), w, uuid.New(), models.EventPlayerCreated, make(chan int))
	require.Error(t, err)
	assert.Empty(t, w.events)
}
