package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/outbox"
	outboxdb "github.com/mcdev12/bpl/go/internal/outbox/db"
	playerdb "github.com/mcdev12/bpl/go/internal/player/db"
	"github.com/mcdev12/bpl/go/internal/sqlutil"
	"github.com/mcdev12/bpl/go/internal/teams/db"
)

// Querier defines the read queries the repository runs outside a transaction
type Querier interface {
	GetTeam(ctx context.Context, id uuid.UUID) (db.Team, error)
	ListTeams(ctx context.Context, namePattern pgtype.Text) ([]db.Team, error)
	ListTeamsByName(ctx context.Context) ([]db.Team, error)
}

// Repository implements team data access operations
type Repository struct {
	db      sqlutil.TxStarter
	queries Querier
}

// NewRepository creates a new teams repository
func NewRepository(database sqlutil.TxStarter, querier Querier) *Repository {
	return &Repository{
		db:      database,
		queries: querier,
	}
}

// txQueries bundles every query set a team write touches inside one transaction
type txQueries struct {
	teams   *db.Queries
	players *playerdb.Queries
	outbox  *outboxdb.Queries
}

func newTxQueries(tx pgx.Tx) *txQueries {
	return &txQueries{
		teams:   db.New(tx),
		players: playerdb.New(tx),
		outbox:  outboxdb.New(tx),
	}
}

// CreateTeam creates a new team
func (r *Repository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	var team *models.Team
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		dbTeam, err := q.teams.CreateTeam(ctx, db.CreateTeamParams{
			ID:          uuid.New(),
			Name:        req.Name,
			LogoUrl:     sqlutil.ToPgText(req.LogoURL),
			HomeCity:    sqlutil.ToPgText(req.HomeCity),
			FoundedYear: sqlutil.ToPgInt4(req.FoundedYear),
		})
		if err != nil {
			return r.translateWriteError(err, req.Name)
		}
		team = r.dbTeamToModel(dbTeam)
		return outbox.Record(ctx, q.outbox, team.ID, models.EventTeamCreated, team)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	dbTeam, err := r.queries.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("team %s not found", id)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return r.dbTeamToModel(dbTeam), nil
}

// ListTeams retrieves teams newest first, optionally filtered by name
func (r *Repository) ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error) {
	pattern := pgtype.Text{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern = pgtype.Text{String: sqlutil.LikePattern(search), Valid: true}
	}

	dbTeams, err := r.queries.ListTeams(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return r.dbTeamsToModels(dbTeams), nil
}

// ListTeamsByName retrieves every team sorted by name
func (r *Repository) ListTeamsByName(ctx context.Context) ([]models.Team, error) {
	dbTeams, err := r.queries.ListTeamsByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by name: %w", err)
	}

	return r.dbTeamsToModels(dbTeams), nil
}

// UpdateTeam updates an existing team
func (r *Repository) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	var team *models.Team
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		dbTeam, err := q.teams.UpdateTeam(ctx, r.updateTeamRequestToParams(id, req))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("team %s not found", id)
			}
			name := ""
			if req.Name != nil {
				name = *req.Name
			}
			return r.translateWriteError(err, name)
		}
		team = r.dbTeamToModel(dbTeam)
		return outbox.Record(ctx, q.outbox, team.ID, models.EventTeamUpdated, team)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam deletes a team and every player on its roster in one transaction
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	result := &DeleteResult{}
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		deleted, err := q.players.DeleteTeamPlayers(ctx, id)
		if err != nil {
			return fmt.Errorf("delete team players: %w", err)
		}
		result.PlayersDeleted = deleted

		n, err := q.teams.DeleteTeam(ctx, id)
		if err != nil {
			return fmt.Errorf("delete team: %w", err)
		}
		if n == 0 {
			return apperr.NotFound("team %s not found", id)
		}
		return outbox.Record(ctx, q.outbox, id, models.EventTeamDeleted, result)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete team: %w", err)
	}

	return result, nil
}

func (r *Repository) translateWriteError(err error, name string) error {
	if _, ok := sqlutil.UniqueViolation(err); ok {
		return apperr.Conflict("team name %q already exists", name)
	}
	if _, ok := sqlutil.CheckViolation(err); ok {
		return apperr.Validation("team name is required")
	}
	return err
}

// updateTeamRequestToParams converts UpdateTeamRequest to query params
func (r *Repository) updateTeamRequestToParams(id uuid.UUID, req UpdateTeamRequest) db.UpdateTeamParams {
	return db.UpdateTeamParams{
		ID:          id,
		Name:        sqlutil.ToPgText(req.Name),
		LogoUrl:     sqlutil.ToPgText(req.LogoURL),
		HomeCity:    sqlutil.ToPgText(req.HomeCity),
		FoundedYear: sqlutil.ToPgInt4(req.FoundedYear),
	}
}

// dbTeamToModel converts a database team to domain model
func (r *Repository) dbTeamToModel(dbTeam db.Team) *models.Team {
	return &models.Team{
		ID:          dbTeam.ID,
		Name:        dbTeam.Name,
		LogoURL:     sqlutil.FromPgText(dbTeam.LogoUrl),
		HomeCity:    sqlutil.FromPgText(dbTeam.HomeCity),
		FoundedYear: sqlutil.FromPgInt4(dbTeam.FoundedYear),
		CreatedAt:   dbTeam.CreatedAt,
		UpdatedAt:   dbTeam.UpdatedAt,
	}
}

func (r *Repository) dbTeamsToModels(dbTeams []db.Team) []models.Team {
	teams := make([]models.Team, len(dbTeams))
	for i, dbTeam := range dbTeams {
		teams[i] = *r.dbTeamToModel(dbTeam)
	}
	return teams
}
