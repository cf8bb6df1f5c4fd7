package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const teamColumns = `id, name, logo_url, home_city, founded_year, created_at, updated_at`

const createTeam = `
INSERT INTO teams (id, name, logo_url, home_city, founded_year)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + teamColumns

type CreateTeamParams struct {
	ID          uuid.UUID
	Name        string
	LogoUrl     pgtype.Text
	HomeCity    pgtype.Text
	FoundedYear pgtype.Int4
}

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRow(ctx, createTeam,
		arg.ID,
		arg.Name,
		arg.LogoUrl,
		arg.HomeCity,
		arg.FoundedYear,
	)
	return scanTeam(row)
}

const getTeam = `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

func (q *Queries) GetTeam(ctx context.Context, id uuid.UUID) (Team, error) {
	row := q.db.QueryRow(ctx, getTeam, id)
	return scanTeam(row)
}

const listTeams = `
SELECT ` + teamColumns + ` FROM teams
WHERE ($1::text IS NULL OR name ILIKE $1::text)
ORDER BY created_at DESC, id`

// ListTeams returns the newest teams first. A NULL pattern returns every team.
func (q *Queries) ListTeams(ctx context.Context, namePattern pgtype.Text) ([]Team, error) {
	rows, err := q.db.Query(ctx, listTeams, namePattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		i, err := scanTeam(rows)
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

const listTeamsByName = `SELECT ` + teamColumns + ` FROM teams ORDER BY name, id`

func (q *Queries) ListTeamsByName(ctx context.Context) ([]Team, error) {
	rows, err := q.db.Query(ctx, listTeamsByName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		i, err := scanTeam(rows)
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

const updateTeam = `
UPDATE teams SET
    name         = COALESCE($2, name),
    logo_url     = COALESCE($3, logo_url),
    home_city    = COALESCE($4, home_city),
    founded_year = COALESCE($5, founded_year),
    updated_at   = now()
WHERE id = $1
RETURNING ` + teamColumns

type UpdateTeamParams struct {
	ID          uuid.UUID
	Name        pgtype.Text
	LogoUrl     pgtype.Text
	HomeCity    pgtype.Text
	FoundedYear pgtype.Int4
}

func (q *Queries) UpdateTeam(ctx context.Context, arg UpdateTeamParams) (Team, error) {
	row := q.db.QueryRow(ctx, updateTeam,
		arg.ID,
		arg.Name,
		arg.LogoUrl,
		arg.HomeCity,
		arg.FoundedYear,
	)
	return scanTeam(row)
}

const deleteTeam = `DELETE FROM teams WHERE id = $1`

func (q *Queries) DeleteTeam(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteTeam, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (Team, error) {
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LogoUrl,
		&i.HomeCity,
		&i.FoundedYear,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
