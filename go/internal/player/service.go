package player

import (
	"context"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	playerv1 "github.com/mcdev12/bpl/go/internal/api/player/v1"
	"github.com/mcdev12/bpl/go/internal/api/player/v1/playerv1connect"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/rpc"
)

// PlayerApp defines what the service layer needs from the player application
type PlayerApp interface {
	CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error)
	CreatePlayers(ctx context.Context, reqs []CreatePlayerRequest) ([]models.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, filter PlayerFilter) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

// Service implements the PlayerService connect interface
type Service struct {
	app PlayerApp
}

// NewService creates a new player service
func NewService(app PlayerApp) *Service {
	return &Service{
		app: app,
	}
}

var _ playerv1connect.PlayerServiceHandler = (*Service)(nil)

// CreatePlayer creates a new player
func (s *Service) CreatePlayer(ctx context.Context, req *connect.Request[playerv1.CreatePlayerRequest]) (*connect.Response[playerv1.CreatePlayerResponse], error) {
	appReq, err := s.protoToCreatePlayerRequest(req.Msg)
	if err != nil {
		return nil, err
	}

	player, err := s.app.CreatePlayer(ctx, appReq)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&playerv1.CreatePlayerResponse{
		Player: PlayerToProto(player),
	}), nil
}

// CreatePlayers creates a batch of players in one transaction
func (s *Service) CreatePlayers(ctx context.Context, req *connect.Request[playerv1.CreatePlayersRequest]) (*connect.Response[playerv1.CreatePlayersResponse], error) {
	appReqs := make([]CreatePlayerRequest, len(req.Msg.Players))
	for i, p := range req.Msg.Players {
		if p == nil {
			return nil, rpc.InvalidArgument("player %d is empty", i+1)
		}
		appReq, err := s.protoToCreatePlayerRequest(p)
		if err != nil {
			return nil, err
		}
		appReqs[i] = appReq
	}

	players, err := s.app.CreatePlayers(ctx, appReqs)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&playerv1.CreatePlayersResponse{
		Players: PlayersToProto(players),
	}), nil
}

// GetPlayer retrieves a player by ID
func (s *Service) GetPlayer(ctx context.Context, req *connect.Request[playerv1.GetPlayerRequest]) (*connect.Response[playerv1.GetPlayerResponse], error) {
	id, err := uuid.Parse(req.Msg.Id)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid player id %q", req.Msg.Id)
	}

	player, err := s.app.GetPlayer(ctx, id)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&playerv1.GetPlayerResponse{
		Player: PlayerToProto(player),
	}), nil
}

// ListPlayers lists players, optionally of one team
func (s *Service) ListPlayers(ctx context.Context, req *connect.Request[playerv1.ListPlayersRequest]) (*connect.Response[playerv1.ListPlayersResponse], error) {
	filter := PlayerFilter{Search: req.Msg.Search}
	if req.Msg.TeamId != "" {
		teamID, err := uuid.Parse(req.Msg.TeamId)
		if err != nil {
			return nil, rpc.InvalidArgument("invalid team id %q", req.Msg.TeamId)
		}
		filter.TeamID = &teamID
	}

	players, err := s.app.ListPlayers(ctx, filter)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&playerv1.ListPlayersResponse{
		Players: PlayersToProto(players),
	}), nil
}

// UpdatePlayer updates an existing player
func (s *Service) UpdatePlayer(ctx context.Context, req *connect.Request[playerv1.UpdatePlayerRequest]) (*connect.Response[playerv1.UpdatePlayerResponse], error) {
	id, err := uuid.Parse(req.Msg.Id)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid player id %q", req.Msg.Id)
	}

	appReq := UpdatePlayerRequest{
		Name:              req.Msg.Name,
		ImageURL:          req.Msg.ImageUrl,
		City:              req.Msg.City,
		IsCaptain:         req.Msg.IsCaptain,
		IsWicketKeeper:    req.Msg.IsWicketKeeper,
		BattingOrder:      int32PtrToInt(req.Msg.BattingOrder),
		ClearBattingOrder: req.Msg.ClearBattingOrder,
	}
	if req.Msg.TeamId != nil {
		teamID, err := uuid.Parse(*req.Msg.TeamId)
		if err != nil {
			return nil, rpc.InvalidArgument("invalid team id %q", *req.Msg.TeamId)
		}
		appReq.TeamID = &teamID
	}
	if req.Msg.PlayingRole != nil {
		role := models.PlayingRole(*req.Msg.PlayingRole)
		appReq.PlayingRole = &role
	}

	player, err := s.app.UpdatePlayer(ctx, id, appReq)
	if err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&playerv1.UpdatePlayerResponse{
		Player: PlayerToProto(player),
	}), nil
}

// DeletePlayer deletes a player by ID
func (s *Service) DeletePlayer(ctx context.Context, req *connect.Request[playerv1.DeletePlayerRequest]) (*connect.Response[playerv1.DeletePlayerResponse], error) {
	id, err := uuid.Parse(req.Msg.Id)
	if err != nil {
		return nil, rpc.InvalidArgument("invalid player id %q", req.Msg.Id)
	}

	if err := s.app.DeletePlayer(ctx, id); err != nil {
		return nil, rpc.Error(err)
	}

	return connect.NewResponse(&playerv1.DeletePlayerResponse{
		Success: true,
	}), nil
}

// PlayerToProto converts a domain player into its wire message
func PlayerToProto(player *models.Player) *playerv1.Player {
	proto := &playerv1.Player{
		Id:             player.ID.String(),
		TeamId:         player.TeamID.String(),
		Name:           player.Name,
		ImageUrl:       player.ImageURL,
		City:           player.City,
		IsCaptain:      player.IsCaptain,
		IsWicketKeeper: player.IsWicketKeeper,
		PlayingRole:    string(player.PlayingRole),
		CreatedAt:      player.CreatedAt,
		UpdatedAt:      player.UpdatedAt,
	}

	if player.BattingOrder != nil {
		order := int32(*player.BattingOrder)
		proto.BattingOrder = &order
	}

	return proto
}

// PlayersToProto converts a slice of domain players
func PlayersToProto(players []models.Player) []*playerv1.Player {
	out := make([]*playerv1.Player, len(players))
	for i := range players {
		out[i] = PlayerToProto(&players[i])
	}
	return out
}

func (s *Service) protoToCreatePlayerRequest(proto *playerv1.CreatePlayerRequest) (CreatePlayerRequest, error) {
	teamID, err := uuid.Parse(proto.TeamId)
	if err != nil {
		return CreatePlayerRequest{}, rpc.InvalidArgument("invalid team id %q", proto.TeamId)
	}

	return CreatePlayerRequest{
		TeamID:         teamID,
		Name:           proto.Name,
		ImageURL:       proto.ImageUrl,
		City:           proto.City,
		IsCaptain:      proto.IsCaptain,
		IsWicketKeeper: proto.IsWicketKeeper,
		PlayingRole:    models.PlayingRole(proto.PlayingRole),
		BattingOrder:   int32PtrToInt(proto.BattingOrder),
	}, nil
}

func int32PtrToInt(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
