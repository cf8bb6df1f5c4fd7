package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

const insertEvent = `
INSERT INTO roster_outbox (id, team_id, event_type, payload)
VALUES ($1, $2, $3, $4)`

type InsertEventParams struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	EventType string
	Payload   json.RawMessage
}

func (q *Queries) InsertEvent(ctx context.Context, arg InsertEventParams) error {
	_, err := q.db.Exec(ctx, insertEvent,
		arg.ID,
		arg.TeamID,
		arg.EventType,
		[]byte(arg.Payload),
	)
	return err
}
