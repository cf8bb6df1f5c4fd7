package teamv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	v1 "github.com/mcdev12/bpl/go/internal/api/team/v1"
)

// TeamServiceName is the fully-qualified name of the TeamService service.
const TeamServiceName = "bpl.team.v1.TeamService"

// Procedure names of the TeamService RPCs, used as HTTP routes.
const (
	TeamServiceCreateTeamProcedure = "/bpl.team.v1.TeamService/CreateTeam"
	TeamServiceGetTeamProcedure    = "/bpl.team.v1.TeamService/GetTeam"
	TeamServiceListTeamsProcedure  = "/bpl.team.v1.TeamService/ListTeams"
	TeamServiceUpdateTeamProcedure = "/bpl.team.v1.TeamService/UpdateTeam"
	TeamServiceDeleteTeamProcedure = "/bpl.team.v1.TeamService/DeleteTeam"
)

// TeamServiceClient is a client for the bpl.team.v1.TeamService service.
type TeamServiceClient interface {
	CreateTeam(context.Context, *connect.Request[v1.CreateTeamRequest]) (*connect.Response[v1.CreateTeamResponse], error)
	GetTeam(context.Context, *connect.Request[v1.GetTeamRequest]) (*connect.Response[v1.GetTeamResponse], error)
	ListTeams(context.Context, *connect.Request[v1.ListTeamsRequest]) (*connect.Response[v1.ListTeamsResponse], error)
	UpdateTeam(context.Context, *connect.Request[v1.UpdateTeamRequest]) (*connect.Response[v1.UpdateTeamResponse], error)
	DeleteTeam(context.Context, *connect.Request[v1.DeleteTeamRequest]) (*connect.Response[v1.DeleteTeamResponse], error)
}

// NewTeamServiceClient constructs a client for the bpl.team.v1.TeamService
// service. Pass rpc.ClientOptions() so requests use the JSON codec.
func NewTeamServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TeamServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &teamServiceClient{
		createTeam: connect.NewClient[v1.CreateTeamRequest, v1.CreateTeamResponse](httpClient, baseURL+TeamServiceCreateTeamProcedure, opts...),
		getTeam:    connect.NewClient[v1.GetTeamRequest, v1.GetTeamResponse](httpClient, baseURL+TeamServiceGetTeamProcedure, opts...),
		listTeams:  connect.NewClient[v1.ListTeamsRequest, v1.ListTeamsResponse](httpClient, baseURL+TeamServiceListTeamsProcedure, opts...),
		updateTeam: connect.NewClient[v1.UpdateTeamRequest, v1.UpdateTeamResponse](httpClient, baseURL+TeamServiceUpdateTeamProcedure, opts...),
		deleteTeam: connect.NewClient[v1.DeleteTeamRequest, v1.DeleteTeamResponse](httpClient, baseURL+TeamServiceDeleteTeamProcedure, opts...),
	}
}

type teamServiceClient struct {
	createTeam *connect.Client[v1.CreateTeamRequest, v1.CreateTeamResponse]
	getTeam    *connect.Client[v1.GetTeamRequest, v1.GetTeamResponse]
	listTeams  *connect.Client[v1.ListTeamsRequest, v1.ListTeamsResponse]
	updateTeam *connect.Client[v1.UpdateTeamRequest, v1.UpdateTeamResponse]
	deleteTeam *connect.Client[v1.DeleteTeamRequest, v1.DeleteTeamResponse]
}

func (c *teamServiceClient) CreateTeam(ctx context.Context, req *connect.Request[v1.CreateTeamRequest]) (*connect.Response[v1.CreateTeamResponse], error) {
	return c.createTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) GetTeam(ctx context.Context, req *connect.Request[v1.GetTeamRequest]) (*connect.Response[v1.GetTeamResponse], error) {
	return c.getTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) ListTeams(ctx context.Context, req *connect.Request[v1.ListTeamsRequest]) (*connect.Response[v1.ListTeamsResponse], error) {
	return c.listTeams.CallUnary(ctx, req)
}

func (c *teamServiceClient) UpdateTeam(ctx context.Context, req *connect.Request[v1.UpdateTeamRequest]) (*connect.Response[v1.UpdateTeamResponse], error) {
	return c.updateTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) DeleteTeam(ctx context.Context, req *connect.Request[v1.DeleteTeamRequest]) (*connect.Response[v1.DeleteTeamResponse], error) {
	return c.deleteTeam.CallUnary(ctx, req)
}

// TeamServiceHandler is implemented by the server side of
// bpl.team.v1.TeamService.
type TeamServiceHandler interface {
	CreateTeam(context.Context, *connect.Request[v1.CreateTeamRequest]) (*connect.Response[v1.CreateTeamResponse], error)
	GetTeam(context.Context, *connect.Request[v1.GetTeamRequest]) (*connect.Response[v1.GetTeamResponse], error)
	ListTeams(context.Context, *connect.Request[v1.ListTeamsRequest]) (*connect.Response[v1.ListTeamsResponse], error)
	UpdateTeam(context.Context, *connect.Request[v1.UpdateTeamRequest]) (*connect.Response[v1.UpdateTeamResponse], error)
	DeleteTeam(context.Context, *connect.Request[v1.DeleteTeamRequest]) (*connect.Response[v1.DeleteTeamResponse], error)
}

// NewTeamServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewTeamServiceHandler(svc TeamServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	createTeamHandler := connect.NewUnaryHandler(TeamServiceCreateTeamProcedure, svc.CreateTeam, opts...)
	getTeamHandler := connect.NewUnaryHandler(TeamServiceGetTeamProcedure, svc.GetTeam, opts...)
	listTeamsHandler := connect.NewUnaryHandler(TeamServiceListTeamsProcedure, svc.ListTeams, opts...)
	updateTeamHandler := connect.NewUnaryHandler(TeamServiceUpdateTeamProcedure, svc.UpdateTeam, opts...)
	deleteTeamHandler := connect.NewUnaryHandler(TeamServiceDeleteTeamProcedure, svc.DeleteTeam, opts...)
	return "/bpl.team.v1.TeamService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TeamServiceCreateTeamProcedure:
			createTeamHandler.ServeHTTP(w, r)
		case TeamServiceGetTeamProcedure:
			getTeamHandler.ServeHTTP(w, r)
		case TeamServiceListTeamsProcedure:
			listTeamsHandler.ServeHTTP(w, r)
		case TeamServiceUpdateTeamProcedure:
			updateTeamHandler.ServeHTTP(w, r)
		case TeamServiceDeleteTeamProcedure:
			deleteTeamHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
