package player

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
	"github.com/mcdev12/bpl/go/internal/player/db"
	"github.com/mcdev12/bpl/go/internal/sqlutil"
)

// Querier defines the read queries the repository runs outside a transaction
type Querier interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (db.Player, error)
	ListPlayers(ctx context.Context, arg db.ListPlayersParams) ([]db.Player, error)
	ListTeamPlayersForExport(ctx context.Context, teamID uuid.UUID) ([]db.Player, error)
}

// Repository implements player data access operations
type Repository struct {
	db      sqlutil.TxStarter
	queries Querier
}

// NewRepository creates a new player repository
func NewRepository(database sqlutil.TxStarter, querier Querier) *Repository {
	return &Repository{
		db:      database,
		queries: querier,
	}
}

type txQueries struct {
	players *db.Queries
	outbox  *outboxdb.Queries
}

func newTxQueries(tx pgx.Tx) *txQueries {
	return &txQueries{
		players: db.New(tx),
		outbox:  outboxdb.New(tx),
	}
}

// CreatePlayers inserts every player in one transaction. For each team that
// receives a captain the existing captain is cleared first.
func (r *Repository) CreatePlayers(ctx context.Context, reqs []CreatePlayerRequest) ([]models.Player, error) {
	players := make([]models.Player, 0, len(reqs))
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		for _, req := range reqs {
			if !req.IsCaptain {
				continue
			}
			if _, err := q.players.ClearTeamCaptain(ctx, db.ClearTeamCaptainParams{TeamID: req.TeamID}); err != nil {
				return fmt.Errorf("clear captain of team %s: %w", req.TeamID, err)
			}
		}

		for _, req := range reqs {
			dbPlayer, err := q.players.CreatePlayer(ctx, db.CreatePlayerParams{
				ID:             uuid.New(),
				TeamID:         req.TeamID,
				Name:           req.Name,
				ImageUrl:       sqlutil.ToPgText(req.ImageURL),
				City:           sqlutil.ToPgText(req.City),
				IsCaptain:      req.IsCaptain,
				IsWicketKeeper: req.IsWicketKeeper,
				PlayingRole:    string(req.PlayingRole),
				BattingOrder:   sqlutil.ToPgInt4(req.BattingOrder),
			})
			if err != nil {
				return TranslateWriteError(err)
			}
			player := DBPlayerToDomain(dbPlayer)
			if err := outbox.Record(ctx, q.outbox, player.TeamID, models.EventPlayerCreated, player); err != nil {
				return err
			}
			players = append(players, *player)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create players: %w", TranslateWriteError(err))
	}

	return players, nil
}

// GetPlayer retrieves a player by ID
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	dbPlayer, err := r.queries.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("player %s not found", id)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return DBPlayerToDomain(dbPlayer), nil
}

// ListPlayers retrieves players by batting order (unordered last), newest first
func (r *Repository) ListPlayers(ctx context.Context, filter PlayerFilter) ([]models.Player, error) {
	params := db.ListPlayersParams{
		TeamID: sqlutil.ToNullUUID(filter.TeamID),
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		params.NamePattern = pgtype.Text{String: sqlutil.LikePattern(search), Valid: true}
	}

	dbPlayers, err := r.queries.ListPlayers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	return DBPlayersToDomain(dbPlayers), nil
}

// ListTeamPlayersForExport retrieves a team's players by batting order then name
func (r *Repository) ListTeamPlayersForExport(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	dbPlayers, err := r.queries.ListTeamPlayersForExport(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", teamID, err)
	}

	return DBPlayersToDomain(dbPlayers), nil
}

// UpdatePlayer applies a partial update. Marking the player captain clears
// the flag from the rest of its (possibly new) team in the same transaction.
func (r *Repository) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	var player *models.Player
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		existing, err := q.players.GetPlayer(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("player %s not found", id)
			}
			return fmt.Errorf("get player: %w", err)
		}

		teamID := existing.TeamID
		if req.TeamID != nil {
			teamID = *req.TeamID
		}
		if req.IsCaptain != nil && *req.IsCaptain {
			if _, err := q.players.ClearTeamCaptain(ctx, db.ClearTeamCaptainParams{
				TeamID: teamID,
				Except: uuid.NullUUID{UUID: id, Valid: true},
			}); err != nil {
				return fmt.Errorf("clear captain of team %s: %w", teamID, err)
			}
		}

		dbPlayer, err := q.players.UpdatePlayer(ctx, r.updatePlayerRequestToParams(id, req))
		if err != nil {
			return TranslateWriteError(err)
		}
		player = DBPlayerToDomain(dbPlayer)
		return outbox.Record(ctx, q.outbox, player.TeamID, models.EventPlayerUpdated, player)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", TranslateWriteError(err))
	}

	return player, nil
}

// DeletePlayer deletes a player by ID
func (r *Repository) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		existing, err := q.players.GetPlayer(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("player %s not found", id)
			}
			return fmt.Errorf("get player: %w", err)
		}

		if _, err := q.players.DeletePlayer(ctx, id); err != nil {
			return fmt.Errorf("delete player: %w", err)
		}
		return outbox.Record(ctx, q.outbox, existing.TeamID, models.EventPlayerDeleted, map[string]string{
			"id":      id.String(),
			"team_id": existing.TeamID.String(),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}

func (r *Repository) updatePlayerRequestToParams(id uuid.UUID, req UpdatePlayerRequest) db.UpdatePlayerParams {
	params := db.UpdatePlayerParams{
		ID:                id,
		Name:              sqlutil.ToPgText(req.Name),
		ImageUrl:          sqlutil.ToPgText(req.ImageURL),
		City:              sqlutil.ToPgText(req.City),
		IsCaptain:         sqlutil.ToPgBool(req.IsCaptain),
		IsWicketKeeper:    sqlutil.ToPgBool(req.IsWicketKeeper),
		TeamID:            sqlutil.ToNullUUID(req.TeamID),
		BattingOrder:      sqlutil.ToPgInt4(req.BattingOrder),
		ClearBattingOrder: req.ClearBattingOrder,
	}
	if req.PlayingRole != nil {
		params.PlayingRole = pgtype.Text{String: string(*req.PlayingRole), Valid: true}
	}
	return params
}

// DBPlayerToDomain converts a database player to the domain model
func DBPlayerToDomain(dbPlayer db.Player) *models.Player {
	return &models.Player{
		ID:             dbPlayer.ID,
		TeamID:         dbPlayer.TeamID,
		Name:           dbPlayer.Name,
		ImageURL:       sqlutil.FromPgText(dbPlayer.ImageUrl),
		City:           sqlutil.FromPgText(dbPlayer.City),
		IsCaptain:      dbPlayer.IsCaptain,
		IsWicketKeeper: dbPlayer.IsWicketKeeper,
		PlayingRole:    models.PlayingRole(dbPlayer.PlayingRole),
		BattingOrder:   sqlutil.FromPgInt4(dbPlayer.BattingOrder),
		CreatedAt:      dbPlayer.CreatedAt,
		UpdatedAt:      dbPlayer.UpdatedAt,
	}
}

// DBPlayersToDomain converts a slice of database players
func DBPlayersToDomain(dbPlayers []db.Player) []models.Player {
	players := make([]models.Player, len(dbPlayers))
	for i, dbPlayer := range dbPlayers {
		players[i] = *DBPlayerToDomain(dbPlayer)
	}
	return players
}
