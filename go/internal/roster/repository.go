package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/outbox"
	outboxdb "github.com/mcdev12/bpl/go/internal/outbox/db"
	"github.com/mcdev12/bpl/go/internal/player"
	playerdb "github.com/mcdev12/bpl/go/internal/player/db"
	"github.com/mcdev12/bpl/go/internal/sqlutil"
)

type Querier interface {
	ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]playerdb.Player, error)
}

// Repository is the RosterStore backed by Postgres
type Repository struct {
	db      sqlutil.TxStarter
	queries Querier
}

func NewRepository(database sqlutil.TxStarter, querier Querier) *Repository {
	return &Repository{
		db:      database,
		queries: querier,
	}
}

type txQueries struct {
	players *playerdb.Queries
	outbox  *outboxdb.Queries
}

func newTxQueries(tx pgx.Tx) *txQueries {
	return &txQueries{
		players: playerdb.New(tx),
		outbox:  outboxdb.New(tx),
	}
}

// battingOrderEvent is the payload of batting_order.updated events
type battingOrderEvent struct {
	TeamID      uuid.UUID    `json:"team_id"`
	Mode        ReorderMode  `json:"mode"`
	Assignments []Assignment `json:"assignments"`
	Cleared     []uuid.UUID  `json:"cleared,omitempty"`
}

type captainEvent struct {
	TeamID    uuid.UUID  `json:"team_id"`
	CaptainID *uuid.UUID `json:"captain_id"`
}

// ListTeamPlayers returns the team's players in creation order
func (r *Repository) ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	dbPlayers, err := r.queries.ListTeamPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %s: %w", teamID, err)
	}
	return player.DBPlayersToDomain(dbPlayers), nil
}

// BulkSetBattingOrder locks the team's players, plans the reorder against
// them and applies it in one transaction. Slot swaps are legal because the
// (team_id, batting_order) constraint is only checked at commit.
func (r *Repository) BulkSetBattingOrder(ctx context.Context, teamID uuid.UUID, planFn PlanFunc) (*ReorderResult, error) {
	result := &ReorderResult{}
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		locked, err := q.players.LockTeamPlayers(ctx, teamID)
		if err != nil {
			return fmt.Errorf("lock team players: %w", err)
		}

		plan, err := planFn(player.DBPlayersToDomain(locked))
		if err != nil {
			return err
		}
		result.Plan = plan

		if plan.Mode == ReorderAuthoritative {
			keep := make([]string, len(plan.Assignments))
			for i, a := range plan.Assignments {
				keep[i] = a.PlayerID.String()
			}
			if _, err := q.players.ClearBattingOrdersExcept(ctx, playerdb.ClearBattingOrdersExceptParams{
				TeamID: teamID,
				Keep:   keep,
			}); err != nil {
				return fmt.Errorf("clear batting orders: %w", err)
			}
		}

		if len(plan.Assignments) > 0 {
			params := make([]playerdb.SetBattingOrderParams, len(plan.Assignments))
			for i, a := range plan.Assignments {
				params[i] = playerdb.SetBattingOrderParams{
					ID:           a.PlayerID,
					TeamID:       teamID,
					BattingOrder: pgtype.Int4{Int32: int32(a.BattingOrder), Valid: true},
				}
			}
			updated, err := q.players.SetBattingOrders(ctx, params)
			if err != nil {
				return player.TranslateWriteError(err)
			}
			if updated != int64(len(params)) {
				return fmt.Errorf("set batting orders: updated %d of %d players", updated, len(params))
			}
		}

		if err := outbox.Record(ctx, q.outbox, teamID, models.EventBattingOrderUpdated, battingOrderEvent{
			TeamID:      teamID,
			Mode:        plan.Mode,
			Assignments: plan.Assignments,
			Cleared:     plan.Cleared,
		}); err != nil {
			return err
		}

		after, err := q.players.ListTeamPlayers(ctx, teamID)
		if err != nil {
			return fmt.Errorf("reload team players: %w", err)
		}
		result.Players = player.DBPlayersToDomain(after)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reorder team %s: %w", teamID, player.TranslateWriteError(err))
	}

	return result, nil
}

// AssignCaptain clears the team's captain and flags playerID in one
// transaction.
func (r *Repository) AssignCaptain(ctx context.Context, teamID, playerID uuid.UUID) (*models.Player, error) {
	var captain *models.Player
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		if _, err := q.players.ClearTeamCaptain(ctx, playerdb.ClearTeamCaptainParams{
			TeamID: teamID,
			Except: uuid.NullUUID{UUID: playerID, Valid: true},
		}); err != nil {
			return fmt.Errorf("clear captain: %w", err)
		}

		n, err := q.players.SetCaptainFlag(ctx, playerdb.SetCaptainFlagParams{
			ID:        playerID,
			TeamID:    teamID,
			IsCaptain: true,
		})
		if err != nil {
			return player.TranslateWriteError(err)
		}
		if n == 0 {
			return apperr.NotFound("player %s not found in team %s", playerID, teamID)
		}

		dbPlayer, err := q.players.GetPlayer(ctx, playerID)
		if err != nil {
			return fmt.Errorf("reload captain: %w", err)
		}
		captain = player.DBPlayerToDomain(dbPlayer)

		return outbox.Record(ctx, q.outbox, teamID, models.EventCaptainChanged, captainEvent{
			TeamID:    teamID,
			CaptainID: &playerID,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set captain: %w", player.TranslateWriteError(err))
	}

	return captain, nil
}

// ClearCaptain drops the captain flag from the whole team
func (r *Repository) ClearCaptain(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var cleared int64
	err := sqlutil.Run(ctx, r.db, newTxQueries, func(q *txQueries) error {
		n, err := q.players.ClearTeamCaptain(ctx, playerdb.ClearTeamCaptainParams{TeamID: teamID})
		if err != nil {
			return fmt.Errorf("clear captain: %w", err)
		}
		cleared = n
		if n == 0 {
			return nil
		}
		return outbox.Record(ctx, q.outbox, teamID, models.EventCaptainChanged, captainEvent{TeamID: teamID})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear captain: %w", err)
	}

	return cleared, nil
}
