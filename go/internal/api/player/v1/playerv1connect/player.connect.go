package playerv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	v1 "github.com/mcdev12/bpl/go/internal/api/player/v1"
)

// PlayerServiceName is the fully-qualified name of the PlayerService service.
const PlayerServiceName = "bpl.player.v1.PlayerService"

// Procedure names of the PlayerService RPCs, used as HTTP routes.
const (
	PlayerServiceCreatePlayerProcedure  = "/bpl.player.v1.PlayerService/CreatePlayer"
	PlayerServiceCreatePlayersProcedure = "/bpl.player.v1.PlayerService/CreatePlayers"
	PlayerServiceGetPlayerProcedure     = "/bpl.player.v1.PlayerService/GetPlayer"
	PlayerServiceListPlayersProcedure   = "/bpl.player.v1.PlayerService/ListPlayers"
	PlayerServiceUpdatePlayerProcedure  = "/bpl.player.v1.PlayerService/UpdatePlayer"
	PlayerServiceDeletePlayerProcedure  = "/bpl.player.v1.PlayerService/DeletePlayer"
)

// PlayerServiceClient is a client for the bpl.player.v1.PlayerService service.
type PlayerServiceClient interface {
	CreatePlayer(context.Context, *connect.Request[v1.CreatePlayerRequest]) (*connect.Response[v1.CreatePlayerResponse], error)
	CreatePlayers(context.Context, *connect.Request[v1.CreatePlayersRequest]) (*connect.Response[v1.CreatePlayersResponse], error)
	GetPlayer(context.Context, *connect.Request[v1.GetPlayerRequest]) (*connect.Response[v1.GetPlayerResponse], error)
	ListPlayers(context.Context, *connect.Request[v1.ListPlayersRequest]) (*connect.Response[v1.ListPlayersResponse], error)
	UpdatePlayer(context.Context, *connect.Request[v1.UpdatePlayerRequest]) (*connect.Response[v1.UpdatePlayerResponse], error)
	DeletePlayer(context.Context, *connect.Request[v1.DeletePlayerRequest]) (*connect.Response[v1.DeletePlayerResponse], error)
}

// NewPlayerServiceClient constructs a client for the bpl.player.v1.PlayerService service.
func NewPlayerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlayerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &playerServiceClient{
		createPlayer:  connect.NewClient[v1.CreatePlayerRequest, v1.CreatePlayerResponse](httpClient, baseURL+PlayerServiceCreatePlayerProcedure, opts...),
		createPlayers: connect.NewClient[v1.CreatePlayersRequest, v1.CreatePlayersResponse](httpClient, baseURL+PlayerServiceCreatePlayersProcedure, opts...),
		getPlayer:     connect.NewClient[v1.GetPlayerRequest, v1.GetPlayerResponse](httpClient, baseURL+PlayerServiceGetPlayerProcedure, opts...),
		listPlayers:   connect.NewClient[v1.ListPlayersRequest, v1.ListPlayersResponse](httpClient, baseURL+PlayerServiceListPlayersProcedure, opts...),
		updatePlayer:  connect.NewClient[v1.UpdatePlayerRequest, v1.UpdatePlayerResponse](httpClient, baseURL+PlayerServiceUpdatePlayerProcedure, opts...),
		deletePlayer:  connect.NewClient[v1.DeletePlayerRequest, v1.DeletePlayerResponse](httpClient, baseURL+PlayerServiceDeletePlayerProcedure, opts...),
	}
}

type playerServiceClient struct {
	createPlayer  *connect.Client[v1.CreatePlayerRequest, v1.CreatePlayerResponse]
	createPlayers *connect.Client[v1.CreatePlayersRequest, v1.CreatePlayersResponse]
	getPlayer     *connect.Client[v1.GetPlayerRequest, v1.GetPlayerResponse]
	listPlayers   *connect.Client[v1.ListPlayersRequest, v1.ListPlayersResponse]
	updatePlayer  *connect.Client[v1.UpdatePlayerRequest, v1.UpdatePlayerResponse]
	deletePlayer  *connect.Client[v1.DeletePlayerRequest, v1.DeletePlayerResponse]
}

func (c *playerServiceClient) CreatePlayer(ctx context.Context, req *connect.Request[v1.CreatePlayerRequest]) (*connect.Response[v1.CreatePlayerResponse], error) {
	return c.createPlayer.CallUnary(ctx, req)
}

func (c *playerServiceClient) CreatePlayers(ctx context.Context, req *connect.Request[v1.CreatePlayersRequest]) (*connect.Response[v1.CreatePlayersResponse], error) {
	return c.createPlayers.CallUnary(ctx, req)
}

func (c *playerServiceClient) GetPlayer(ctx context.Context, req *connect.Request[v1.GetPlayerRequest]) (*connect.Response[v1.GetPlayerResponse], error) {
	return c.getPlayer.CallUnary(ctx, req)
}

func (c *playerServiceClient) ListPlayers(ctx context.Context, req *connect.Request[v1.ListPlayersRequest]) (*connect.Response[v1.ListPlayersResponse], error) {
	return c.listPlayers.CallUnary(ctx, req)
}

func (c *playerServiceClient) UpdatePlayer(ctx context.Context, req *connect.Request[v1.UpdatePlayerRequest]) (*connect.Response[v1.UpdatePlayerResponse], error) {
	return c.updatePlayer.CallUnary(ctx, req)
}

func (c *playerServiceClient) DeletePlayer(ctx context.Context, req *connect.Request[v1.DeletePlayerRequest]) (*connect.Response[v1.DeletePlayerResponse], error) {
	return c.deletePlayer.CallUnary(ctx, req)
}

// PlayerServiceHandler is implemented by the server side of bpl.player.v1.PlayerService.
type PlayerServiceHandler interface {
	CreatePlayer(context.Context, *connect.Request[v1.CreatePlayerRequest]) (*connect.Response[v1.CreatePlayerResponse], error)
	CreatePlayers(context.Context, *connect.Request[v1.CreatePlayersRequest]) (*connect.Response[v1.CreatePlayersResponse], error)
	GetPlayer(context.Context, *connect.Request[v1.GetPlayerRequest]) (*connect.Response[v1.GetPlayerResponse], error)
	ListPlayers(context.Context, *connect.Request[v1.ListPlayersRequest]) (*connect.Response[v1.ListPlayersResponse], error)
	UpdatePlayer(context.Context, *connect.Request[v1.UpdatePlayerRequest]) (*connect.Response[v1.UpdatePlayerResponse], error)
	DeletePlayer(context.Context, *connect.Request[v1.DeletePlayerRequest]) (*connect.Response[v1.DeletePlayerResponse], error)
}

// NewPlayerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPlayerServiceHandler(svc PlayerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	createPlayerHandler := connect.NewUnaryHandler(PlayerServiceCreatePlayerProcedure, svc.CreatePlayer, opts...)
	createPlayersHandler := connect.NewUnaryHandler(PlayerServiceCreatePlayersProcedure, svc.CreatePlayers, opts...)
	getPlayerHandler := connect.NewUnaryHandler(PlayerServiceGetPlayerProcedure, svc.GetPlayer, opts...)
	listPlayersHandler := connect.NewUnaryHandler(PlayerServiceListPlayersProcedure, svc.ListPlayers, opts...)
	updatePlayerHandler := connect.NewUnaryHandler(PlayerServiceUpdatePlayerProcedure, svc.UpdatePlayer, opts...)
	deletePlayerHandler := connect.NewUnaryHandler(PlayerServiceDeletePlayerProcedure, svc.DeletePlayer, opts...)
	return "/bpl.player.v1.PlayerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PlayerServiceCreatePlayerProcedure:
			createPlayerHandler.ServeHTTP(w, r)
		case PlayerServiceCreatePlayersProcedure:
			createPlayersHandler.ServeHTTP(w, r)
		case PlayerServiceGetPlayerProcedure:
			getPlayerHandler.ServeHTTP(w, r)
		case PlayerServiceListPlayersProcedure:
			listPlayersHandler.ServeHTTP(w, r)
		case PlayerServiceUpdatePlayerProcedure:
			updatePlayerHandler.ServeHTTP(w, r)
		case PlayerServiceDeletePlayerProcedure:
			deletePlayerHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
