package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/sqlc-dev/pqtype"
)

// EventStore reads pending events and marks them published.
type EventStore interface {
	FetchByID(ctx context.Context, id uuid.UUID) (models.RosterEvent, error)
	FetchUnsent(ctx context.Context, limit int32) ([]models.RosterEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
}

// ErrEventNotFound is returned by FetchByID for an unknown id.
var ErrEventNotFound = errors.New("outbox event not found")

// SQLStore is the relay's view of roster_outbox over database/sql. The relay
// runs as its own process on the lib/pq driver, apart from the pgx pool the
// API uses.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const fetchOutboxByID = `
SELECT id, team_id, event_type, payload, created_at, sent_at
FROM roster_outbox
WHERE id = $1`

const fetchUnsentOutbox = `
SELECT id, team_id, event_type, payload, created_at, sent_at
FROM roster_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1`

const markOutboxSent = `
UPDATE roster_outbox
SET sent_at = now()
WHERE id = $1 AND sent_at IS NULL`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.RosterEvent, error) {
	var (
		ev        models.RosterEvent
		eventType string
		payload   pqtype.NullRawMessage
		sentAt    sql.NullTime
	)
	if err := row.Scan(&ev.ID, &ev.TeamID, &eventType, &payload, &ev.CreatedAt, &sentAt); err != nil {
		return models.RosterEvent{}, err
	}
	ev.EventType = models.EventType(eventType)
	if payload.Valid {
		ev.Payload = payload.RawMessage
	}
	if sentAt.Valid {
		t := sentAt.Time
		ev.SentAt = &t
	}
	return ev, nil
}

func (s *SQLStore) FetchByID(ctx context.Context, id uuid.UUID) (models.RosterEvent, error) {
	ev, err := scanEvent(s.db.QueryRowContext(ctx, fetchOutboxByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RosterEvent{}, ErrEventNotFound
	}
	if err != nil {
		return models.RosterEvent{}, fmt.Errorf("fetch outbox event %s: %w", id, err)
	}
	return ev, nil
}

func (s *SQLStore) FetchUnsent(ctx context.Context, limit int32) ([]models.RosterEvent, error) {
	rows, err := s.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []models.RosterEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox events: %w", err)
	}
	return events, nil
}

func (s *SQLStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, markOutboxSent, id); err != nil {
		return fmt.Errorf("mark outbox event %s sent: %w", id, err)
	}
	return nil
}

// PendingCount reports how many events are waiting to be published.
func (s *SQLStore) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM roster_outbox WHERE sent_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending outbox events: %w", err)
	}
	return n, nil
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ EventStore = (*SQLStore)(nil)
