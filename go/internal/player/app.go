package player

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

// PlayerRepository defines what the app layer needs from the repository
type PlayerRepository interface {
	CreatePlayers(ctx context.Context, reqs []CreatePlayerRequest) ([]models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, filter PlayerFilter) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

type TeamApp interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App handles player business logic
type App struct {
	repo    PlayerRepository
	teamApp TeamApp
}

// NewApp creates a new player App
func NewApp(repo PlayerRepository, teamApp TeamApp) *App {
	return &App{
		repo:    repo,
		teamApp: teamApp,
	}
}

// CreatePlayer creates a new player with validation. A new captain replaces
// the team's previous one.
func (a *App) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error) {
	players, err := a.CreatePlayers(ctx, []CreatePlayerRequest{req})
	if err != nil {
		return nil, err
	}
	return &players[0], nil
}

// CreatePlayers creates a batch of players atomically. At most one captain
// per team may appear in the batch and batting orders must not repeat within
// a team.
func (a *App) CreatePlayers(ctx context.Context, reqs []CreatePlayerRequest) ([]models.Player, error) {
	if len(reqs) == 0 {
		return nil, apperr.Validation("at least one player is required")
	}

	type slot struct {
		team  uuid.UUID
		order int
	}
	captains := make(map[uuid.UUID]int)
	orders := make(map[slot]bool)
	checkedTeams := make(map[uuid.UUID]bool)

	reqs = slices.Clone(reqs)
	for i := range reqs {
		reqs[i].Name = strings.TrimSpace(reqs[i].Name)
		reqs[i].City = sqlutil.TrimPtr(reqs[i].City)
		reqs[i].ImageURL = sqlutil.TrimPtr(reqs[i].ImageURL)

		if err := a.validateCreatePlayerRequest(reqs[i]); err != nil {
			if len(reqs) > 1 {
				return nil, apperr.Validation("player %d: %s", i+1, err.Error())
			}
			return nil, err
		}

		if reqs[i].IsCaptain {
			captains[reqs[i].TeamID]++
			if captains[reqs[i].TeamID] > 1 {
				return nil, apperr.Validation("only one captain per team may be created at once")
			}
		}
		if reqs[i].BattingOrder != nil {
			key := slot{team: reqs[i].TeamID, order: *reqs[i].BattingOrder}
			if orders[key] {
				return nil, apperr.Validation("batting order %d is used more than once for the same team", key.order)
			}
			orders[key] = true
		}

		if !checkedTeams[reqs[i].TeamID] {
			if _, err := a.teamApp.GetTeam(ctx, reqs[i].TeamID); err != nil {
				return nil, err
			}
			checkedTeams[reqs[i].TeamID] = true
		}
	}

	players, err := a.repo.CreatePlayers(ctx, reqs)
	if err != nil {
		return nil, err
	}

	log.Info().Int("count", len(players)).Msg("created players")
	return players, nil
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.GetPlayer(ctx, id)
}

// ListPlayers retrieves players, optionally for one team and by name search
func (a *App) ListPlayers(ctx context.Context, filter PlayerFilter) ([]models.Player, error) {
	return a.repo.ListPlayers(ctx, filter)
}

// UpdatePlayer updates a player. Moving a player to another team clears its
// batting order and captaincy unless the request sets them.
func (a *App) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	req.City = sqlutil.TrimPtr(req.City)
	req.ImageURL = sqlutil.TrimPtr(req.ImageURL)

	if err := a.validateUpdatePlayerRequest(req); err != nil {
		return nil, err
	}

	existing, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TeamID != nil && *req.TeamID != existing.TeamID {
		if _, err := a.teamApp.GetTeam(ctx, *req.TeamID); err != nil {
			return nil, err
		}
		if req.BattingOrder == nil {
			req.ClearBattingOrder = true
		}
		if req.IsCaptain == nil && existing.IsCaptain {
			notCaptain := false
			req.IsCaptain = &notCaptain
		}
	}

	player, err := a.repo.UpdatePlayer(ctx, id, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("player_id", id.String()).Str("team_id", player.TeamID.String()).Msg("updated player")
	return player, nil
}

// DeletePlayer deletes a player by ID
func (a *App) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeletePlayer(ctx, id); err != nil {
		return err
	}

	log.Info().Str("player_id", id.String()).Msg("deleted player")
	return nil
}

// Validation methods

func (a *App) validateCreatePlayerRequest(req CreatePlayerRequest) error {
	if req.Name == "" {
		return apperr.Validation("player name is required")
	}
	if req.TeamID == uuid.Nil {
		return apperr.Validation("team is required")
	}
	if !req.PlayingRole.Valid() {
		return apperr.Validation("playing role %q is not one of Bat, Bowl, A.R", req.PlayingRole)
	}
	return validateBattingOrder(req.BattingOrder)
}

func (a *App) validateUpdatePlayerRequest(req UpdatePlayerRequest) error {
	if req.Name != nil && *req.Name == "" {
		return apperr.Validation("player name cannot be empty")
	}
	if req.TeamID != nil && *req.TeamID == uuid.Nil {
		return apperr.Validation("team cannot be empty")
	}
	if req.PlayingRole != nil && !req.PlayingRole.Valid() {
		return apperr.Validation("playing role %q is not one of Bat, Bowl, A.R", *req.PlayingRole)
	}
	if req.ClearBattingOrder && req.BattingOrder != nil {
		return apperr.Validation("batting order cannot be set and cleared at once")
	}
	return validateBattingOrder(req.BattingOrder)
}

func validateBattingOrder(order *int) error {
	if order == nil {
		return nil
	}
	if *order < 1 || *order > models.MaxBattingOrder {
		return apperr.Validation("batting order must be between 1 and %d", models.MaxBattingOrder)
	}
	return nil
}
