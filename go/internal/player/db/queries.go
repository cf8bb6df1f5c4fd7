package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const playerColumns = `id, team_id, name, image_url, city, is_captain, is_wicket_keeper, playing_role, batting_order, created_at, updated_at`

const createPlayer = `
INSERT INTO players (id, team_id, name, image_url, city, is_captain, is_wicket_keeper, playing_role, batting_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + playerColumns

type CreatePlayerParams struct {
	ID             uuid.UUID
	TeamID         uuid.UUID
	Name           string
	ImageUrl       pgtype.Text
	City           pgtype.Text
	IsCaptain      bool
	IsWicketKeeper bool
	PlayingRole    string
	BattingOrder   pgtype.Int4
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRow(ctx, createPlayer,
		arg.ID,
		arg.TeamID,
		arg.Name,
		arg.ImageUrl,
		arg.City,
		arg.IsCaptain,
		arg.IsWicketKeeper,
		arg.PlayingRole,
		arg.BattingOrder,
	)
	return scanPlayer(row)
}

const getPlayer = `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

func (q *Queries) GetPlayer(ctx context.Context, id uuid.UUID) (Player, error) {
	row := q.db.QueryRow(ctx, getPlayer, id)
	return scanPlayer(row)
}

const listPlayers = `
SELECT ` + playerColumns + ` FROM players
WHERE ($1::uuid IS NULL OR team_id = $1::uuid)
  AND ($2::text IS NULL OR name ILIKE $2::text)
ORDER BY batting_order ASC NULLS LAST, created_at DESC, id`

type ListPlayersParams struct {
	TeamID      uuid.NullUUID
	NamePattern pgtype.Text
}

func (q *Queries) ListPlayers(ctx context.Context, arg ListPlayersParams) ([]Player, error) {
	return q.queryPlayers(ctx, listPlayers, arg.TeamID, arg.NamePattern)
}

const listTeamPlayers = `
SELECT ` + playerColumns + ` FROM players
WHERE team_id = $1
ORDER BY created_at, id`

// ListTeamPlayers returns a team's roster in creation order.
func (q *Queries) ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]Player, error) {
	return q.queryPlayers(ctx, listTeamPlayers, teamID)
}

const listTeamPlayersForExport = `
SELECT ` + playerColumns + ` FROM players
WHERE team_id = $1
ORDER BY batting_order ASC NULLS LAST, name, id`

func (q *Queries) ListTeamPlayersForExport(ctx context.Context, teamID uuid.UUID) ([]Player, error) {
	return q.queryPlayers(ctx, listTeamPlayersForExport, teamID)
}

const lockTeamPlayers = `
SELECT ` + playerColumns + ` FROM players
WHERE team_id = $1
ORDER BY created_at, id
FOR UPDATE`

// LockTeamPlayers reads a team's roster and row-locks it for the rest of the
// transaction.
func (q *Queries) LockTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]Player, error) {
	return q.queryPlayers(ctx, lockTeamPlayers, teamID)
}

const updatePlayer = `
UPDATE players SET
    name             = COALESCE($2, name),
    image_url        = COALESCE($3, image_url),
    city             = COALESCE($4, city),
    is_captain       = COALESCE($5, is_captain),
    is_wicket_keeper = COALESCE($6, is_wicket_keeper),
    playing_role     = COALESCE($7, playing_role),
    team_id          = COALESCE($8, team_id),
    batting_order    = CASE WHEN $10::bool THEN NULL ELSE COALESCE($9, batting_order) END,
    updated_at       = now()
WHERE id = $1
RETURNING ` + playerColumns

type UpdatePlayerParams struct {
	ID                uuid.UUID
	Name              pgtype.Text
	ImageUrl          pgtype.Text
	City              pgtype.Text
	IsCaptain         pgtype.Bool
	IsWicketKeeper    pgtype.Bool
	PlayingRole       pgtype.Text
	TeamID            uuid.NullUUID
	BattingOrder      pgtype.Int4
	ClearBattingOrder bool
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (Player, error) {
	row := q.db.QueryRow(ctx, updatePlayer,
		arg.ID,
		arg.Name,
		arg.ImageUrl,
		arg.City,
		arg.IsCaptain,
		arg.IsWicketKeeper,
		arg.PlayingRole,
		arg.TeamID,
		arg.BattingOrder,
		arg.ClearBattingOrder,
	)
	return scanPlayer(row)
}

const deletePlayer = `DELETE FROM players WHERE id = $1`

func (q *Queries) DeletePlayer(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deletePlayer, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteTeamPlayers = `DELETE FROM players WHERE team_id = $1`

func (q *Queries) DeleteTeamPlayers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteTeamPlayers, teamID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const clearTeamCaptain = `
UPDATE players SET is_captain = FALSE, updated_at = now()
WHERE team_id = $1 AND is_captain AND ($2::uuid IS NULL OR id <> $2::uuid)`

type ClearTeamCaptainParams struct {
	TeamID uuid.UUID
	Except uuid.NullUUID
}

// ClearTeamCaptain drops the captain flag from every player of the team
// except the optional Except player.
func (q *Queries) ClearTeamCaptain(ctx context.Context, arg ClearTeamCaptainParams) (int64, error) {
	result, err := q.db.Exec(ctx, clearTeamCaptain, arg.TeamID, arg.Except)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const setCaptainFlag = `
UPDATE players SET is_captain = $3, updated_at = now()
WHERE id = $1 AND team_id = $2`

type SetCaptainFlagParams struct {
	ID        uuid.UUID
	TeamID    uuid.UUID
	IsCaptain bool
}

func (q *Queries) SetCaptainFlag(ctx context.Context, arg SetCaptainFlagParams) (int64, error) {
	result, err := q.db.Exec(ctx, setCaptainFlag, arg.ID, arg.TeamID, arg.IsCaptain)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const setBattingOrder = `
UPDATE players SET batting_order = $3, updated_at = now()
WHERE id = $1 AND team_id = $2`

type SetBattingOrderParams struct {
	ID           uuid.UUID
	TeamID       uuid.UUID
	BattingOrder pgtype.Int4
}

// SetBattingOrders queues one update per player and sends them as a single
// batch. It returns the number of rows updated.
func (q *Queries) SetBattingOrders(ctx context.Context, arg []SetBattingOrderParams) (int64, error) {
	batch := &pgx.Batch{}
	for _, a := range arg {
		batch.Queue(setBattingOrder, a.ID, a.TeamID, a.BattingOrder)
	}
	br := q.db.SendBatch(ctx, batch)
	defer br.Close()

	var total int64
	for range arg {
		tag, err := br.Exec()
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}

const clearBattingOrdersExcept = `
UPDATE players SET batting_order = NULL, updated_at = now()
WHERE team_id = $1
  AND batting_order IS NOT NULL
  AND id::text <> ALL($2::text[])`

type ClearBattingOrdersExceptParams struct {
	TeamID uuid.UUID
	Keep   []string
}

func (q *Queries) ClearBattingOrdersExcept(ctx context.Context, arg ClearBattingOrdersExceptParams) (int64, error) {
	keep := arg.Keep
	if keep == nil {
		keep = []string{}
	}
	result, err := q.db.Exec(ctx, clearBattingOrdersExcept, arg.TeamID, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (q *Queries) queryPlayers(ctx context.Context, sql string, args ...interface{}) ([]Player, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var i Player
	err := row.Scan(
		&i.ID,
		&i.TeamID,
		&i.Name,
		&i.ImageUrl,
		&i.City,
		&i.IsCaptain,
		&i.IsWicketKeeper,
		&i.PlayingRole,
		&i.BattingOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
