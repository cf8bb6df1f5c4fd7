package teams

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	teamv1 "github.com/mcdev12/bpl/go/internal/api/team/v1"
	"github.com/mcdev12/bpl/go/internal/api/team/v1/teamv1connect"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/rpc"
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

// Service implements the TeamService connect interface
type Service struct {
	app TeamsApp
}

// NewService creates a new teams service
func NewService(app TeamsApp) *Service {
	return &Service{
		app: app,
	}
}

// Verify that Service implements the TeamServiceHandler interface
var _ teamv1connect.TeamServiceHandler = (*Service)(nil)

// CreateTeam creates a new team
func (s *Service) CreateTeam(ctx context.Context, req *connect.Request[teamv1.CreateTeamRequest]) (*connect.Response[teamv1.CreateTeamResponse], error) {
	team, err := s.app.CreateTeam(ctx, s.protoToCreateTeamRequest(req.Msg))
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&teamv1.CreateTeamResponse{
		Team: TeamToProto(team),
	}), nil
}

// GetTeam retrieves a team by ID
func (s *Service) GetTeam(ctx context.Context, req *connect.Request[teamv1.GetTeamRequest]) (*connect.Response[teamv1.GetTeamResponse], error) {
	id, err := uuid.Parse(req.Msg.Id)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid team id %q", req.Msg.Id)
	}

	team, err := s.app.GetTeam(ctx, id)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&teamv1.GetTeamResponse{
		Team: TeamToProto(team),
	}), nil
}

// ListTeams retrieves teams, newest first
func (s *Service) ListTeams(ctx context.Context, req *connect.Request[teamv1.ListTeamsRequest]) (*connect.Response[teamv1.ListTeamsResponse], error) {
	teams, err := s.app.ListTeams(ctx, TeamFilter{Search: req.Msg.Search})
	if err != nil {
		return nil, rpc.Error(err)
	}

	protoTeams := make([]*teamv1.Team, len(teams))
	for i := range teams {
		protoTeams[i] = TeamToProto(&teams[i])
	}

	return connect.NewResponse(&teamv1.ListTeamsResponse{
		Teams: protoTeams,
	}), nil
}

// UpdateTeam updates an existing team
func (s *Service) UpdateTeam(ctx context.Context, req *connect.Request[teamv1.UpdateTeamRequest]) (*connect.Response[teamv1.UpdateTeamResponse], error) {
	id, err := uuid.Parse(req.Msg.Id)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid team id %q", req.Msg.Id)
	}

	team, err := s.app.UpdateTeam(ctx, id, s.protoToUpdateTeamRequest(req.Msg))
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&teamv1.UpdateTeamResponse{
		Team: TeamToProto(team),
	}), nil
}

// DeleteTeam deletes a team and its roster
func (s *Service) DeleteTeam(ctx context.Context, req *connect.Request[teamv1.DeleteTeamRequest]) (*connect.Response[teamv1.DeleteTeamResponse], error) {
	id, err := uuid.Parse(req.Msg.Id)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid team id %q", req.Msg.Id)
	}

	result, err := s.app.DeleteTeam(ctx, id)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&teamv1.DeleteTeamResponse{
		Success:        true,
		PlayersDeleted: result.PlayersDeleted,
	}), nil
}

// Conversion methods between wire messages and app layer models

// TeamToProto converts a domain team into its wire message
func TeamToProto(team *models.Team) *teamv1.Team {
	proto := &teamv1.Team{
		Id:        team.ID.String(),
		Name:      team.Name,
		LogoUrl:   team.LogoURL,
		HomeCity:  team.HomeCity,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}

	if team.FoundedYear != nil {
		year := int32(*team.FoundedYear)
		proto.FoundedYear = &year
	}

	return proto
}

func (s *Service) protoToCreateTeamRequest(proto *teamv1.CreateTeamRequest) CreateTeamRequest {
	return CreateTeamRequest{
		Name:        proto.Name,
		LogoURL:     proto.LogoUrl,
		HomeCity:    proto.HomeCity,
		FoundedYear: int32PtrToInt(proto.FoundedYear),
	}
}

func (s *Service) protoToUpdateTeamRequest(proto *teamv1.UpdateTeamRequest) UpdateTeamRequest {
	return UpdateTeamRequest{
		Name:        proto.Name,
		LogoURL:     proto.LogoUrl,
		HomeCity:    proto.HomeCity,
		FoundedYear: int32PtrToInt(proto.FoundedYear),
	}
}

func int32PtrToInt(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
