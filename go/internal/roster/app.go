package roster

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/rs/zerolog/log"
)

// PlanFunc turns the team's locked roster into the writes of a reorder.
type PlanFunc func(roster []models.Player) (*ReorderPlan, error)

// ReorderResult is a committed reorder and the team's players afterwards.
type ReorderResult struct {
	Plan    *ReorderPlan
	Players []models.Player
}

// RosterStore defines what the app layer needs from the repository
type RosterStore interface {
	ListTeamPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	// BulkSetBattingOrder locks the team's players, asks plan for the
	// writes and applies them all-or-nothing.
	BulkSetBattingOrder(ctx context.Context, teamID uuid.UUID, plan PlanFunc) (*ReorderResult, error)
	AssignCaptain(ctx context.Context, teamID, playerID uuid.UUID) (*models.Player, error)
	ClearCaptain(ctx context.Context, teamID uuid.UUID) (int64, error)
}

// TeamApp defines what the app layer needs from the teams app for validation
type TeamApp interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App handles batting order and captaincy
type App struct {
	store   RosterStore
	teamApp TeamApp
	mode    ReorderMode
}

// NewApp creates a new roster App
func NewApp(store RosterStore, teamApp TeamApp, mode ReorderMode) *App {
	if mode == "" {
		mode = ReorderAuthoritative
	}
	return &App{
		store:   store,
		teamApp: teamApp,
		mode:    mode,
	}
}

// GetLineup returns the team's players in batting order, unordered last
func (a *App) GetLineup(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	if _, err := a.teamApp.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	players, err := a.store.ListTeamPlayers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return ComputeInitialOrder(players), nil
}

// Reorder gives the first 11 players of orderedIDs batting orders 1..11 in a
// single transaction.
func (a *App) Reorder(ctx context.Context, teamID uuid.UUID, orderedIDs []uuid.UUID) (*ReorderResult, error) {
	result, err := a.store.BulkSetBattingOrder(ctx, teamID, func(roster []models.Player) (*ReorderPlan, error) {
		return PlanReorder(roster, orderedIDs, a.mode)
	})
	if err != nil {
		return nil, err
	}
	result.Players = ComputeInitialOrder(result.Players)

	log.Info().
		Str("team_id", teamID.String()).
		Str("mode", string(a.mode)).
		Int("assigned", len(result.Plan.Assignments)).
		Int("cleared", len(result.Plan.Cleared)).
		Int("truncated", result.Plan.Truncated).
		Msg("reordered batting lineup")
	return result, nil
}

// SetCaptain makes playerID the only captain of the team
func (a *App) SetCaptain(ctx context.Context, teamID, playerID uuid.UUID) (*models.Player, error) {
	player, err := a.store.AssignCaptain(ctx, teamID, playerID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("team_id", teamID.String()).Str("player_id", playerID.String()).Msg("captain set")
	return player, nil
}

// ClearCaptain leaves the team without a captain
func (a *App) ClearCaptain(ctx context.Context, teamID uuid.UUID) error {
	if _, err := a.teamApp.GetTeam(ctx, teamID); err != nil {
		return err
	}

	cleared, err := a.store.ClearCaptain(ctx, teamID)
	if err != nil {
		return err
	}

	log.Info().Str("team_id", teamID.String()).Int64("cleared", cleared).Msg("captain cleared")
	return nil
}
