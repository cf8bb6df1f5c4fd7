package roster

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	rosterv1 "github.com/mcdev12/bpl/go/internal/api/roster/v1"
	"github.com/mcdev12/bpl/go/internal/api/roster/v1/rosterv1connect"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/player"
	"github.com/mcdev12/bpl/go/internal/rpc"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	GetLineup(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	Reorder(ctx context.Context, teamID uuid.UUID, orderedIDs []uuid.UUID) (*ReorderResult, error)
	SetCaptain(ctx context.Context, teamID, playerID uuid.UUID) (*models.Player, error)
	ClearCaptain(ctx context.Context, teamID uuid.UUID) error
}

// Service implements the RosterService connect interface
type Service struct {
	app RosterApp
}

func NewService(app RosterApp) *Service {
	return &Service{app: app}
}

var _ rosterv1connect.RosterServiceHandler = (*Service)(nil)

// GetLineup returns a team's players in batting order
func (s *Service) GetLineup(ctx context.Context, req *connect.Request[rosterv1.GetLineupRequest]) (*connect.Response[rosterv1.GetLineupResponse], error) {
	teamID, err := parseTeamID(req.Msg.TeamId)
	if err != nil {
		return nil, err
	}

	players, err := s.app.GetLineup(ctx, teamID)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&rosterv1.GetLineupResponse{
		Players: player.PlayersToProto(players),
	}), nil
}

// Reorder saves a new batting order for a team
func (s *Service) Reorder(ctx context.Context, req *connect.Request[rosterv1.ReorderRequest]) (*connect.Response[rosterv1.ReorderResponse], error) {
	teamID, err := parseTeamID(req.Msg.TeamId)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Msg.PlayerIds))
	for i, raw := range req.Msg.PlayerIds {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, rpc.InvalidArgument("invalid player id %q", raw)
		}
		ids[i] = id
	}

	result, err := s.app.Reorder(ctx, teamID, ids)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&rosterv1.ReorderResponse{
		Success:  true,
		Assigned: int32(len(result.Plan.Assignments)),
		Cleared:  int32(len(result.Plan.Cleared)),
		Players:  player.PlayersToProto(result.Players),
	}), nil
}

// SetCaptain makes a player the team's only captain
func (s *Service) SetCaptain(ctx context.Context, req *connect.Request[rosterv1.SetCaptainRequest]) (*connect.Response[rosterv1.SetCaptainResponse], error) {
	teamID, err := parseTeamID(req.Msg.TeamId)
	if err != nil {
		return nil, err
	}
	playerID, err := uuid.Parse(req.Msg.PlayerId)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid player id %q", req.Msg.PlayerId)
	}

	captain, err := s.app.SetCaptain(ctx, teamID, playerID)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&rosterv1.SetCaptainResponse{
		Success: true,
		Player:  player.PlayerToProto(captain),
	}), nil
}

// ClearCaptain removes the team's captain
func (s *Service) ClearCaptain(ctx context.Context, req *connect.Request[rosterv1.ClearCaptainRequest]) (*connect.Response[rosterv1.ClearCaptainResponse], error) {
	teamID, err := parseTeamID(req.Msg.TeamId)
	if err != nil {
		return nil, err
	}

	if err := s.app.ClearCaptain(ctx, teamID); err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&rosterv1.ClearCaptainResponse{Success: true}), nil
}

func parseTeamID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, rpc.InvalidArgument("invalid team id %q", raw)
	}
	return id, nil
}
