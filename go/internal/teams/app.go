package teams

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error)
	ListTeamsByName(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

// App handles teams business logic
type App struct {
	repo  TeamsRepository
	clock clockwork.Clock
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		clock: clock,
	}
}

// CreateTeam creates a new team with validation
func (a *App) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.LogoURL = sqlutil.TrimPtr(req.LogoURL)
	req.HomeCity = sqlutil.TrimPtr(req.HomeCity)

	if err := a.validateCreateTeamRequest(req); err != nil {
		return nil, err
	}

	team, err := a.repo.CreateTeam(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("created team")
	return team, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return a.repo.GetTeam(ctx, id)
}

// ListTeams retrieves teams newest first, filtered by a name search
func (a *App) ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error) {
	teams, err := a.repo.ListTeams(ctx, filter)
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListTeamsByName retrieves every team in name order
func (a *App) ListTeamsByName(ctx context.Context) ([]models.Team, error) {
	return a.repo.ListTeamsByName(ctx)
}

// UpdateTeam updates an existing team with validation
func (a *App) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	req.LogoURL = sqlutil.TrimPtr(req.LogoURL)
	req.HomeCity = sqlutil.TrimPtr(req.HomeCity)

	if err := a.validateUpdateTeamRequest(req); err != nil {
		return nil, err
	}

	team, err := a.repo.UpdateTeam(ctx, id, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("updated team")
	return team, nil
}

// DeleteTeam deletes a team and its players
func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	result, err := a.repo.DeleteTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("team_id", id.String()).
		Int64("players_deleted", result.PlayersDeleted).
		Msg("deleted team")
	return result, nil
}

// Validation methods

func (a *App) validateCreateTeamRequest(req CreateTeamRequest) error {
	if req.Name == "" {
		return apperr.Validation("team name is required")
	}
	return a.validateFoundedYear(req.FoundedYear)
}

func (a *App) validateUpdateTeamRequest(req UpdateTeamRequest) error {
	if req.Name != nil && *req.Name == "" {
		return apperr.Validation("team name cannot be empty")
	}
	return a.validateFoundedYear(req.FoundedYear)
}

func (a *App) validateFoundedYear(year *int) error {
	if year == nil {
		return nil
	}
	current := a.clock.Now().Year()
	if *year < minFoundedYear || *year > current {
		return apperr.Validation("founded year must be between %d and %d", minFoundedYear, current)
	}
	return nil
}
