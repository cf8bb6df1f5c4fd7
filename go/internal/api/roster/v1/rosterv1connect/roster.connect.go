package rosterv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	v1 "github.com/mcdev12/bpl/go/internal/api/roster/v1"
)

// RosterServiceName is the fully-qualified name of the RosterService service.
const RosterServiceName = "bpl.roster.v1.RosterService"

// Procedure names of the RosterService RPCs, used as HTTP routes.
const (
	RosterServiceGetLineupProcedure    = "/bpl.roster.v1.RosterService/GetLineup"
	RosterServiceReorderProcedure      = "/bpl.roster.v1.RosterService/Reorder"
	RosterServiceSetCaptainProcedure   = "/bpl.roster.v1.RosterService/SetCaptain"
	RosterServiceClearCaptainProcedure = "/bpl.roster.v1.RosterService/ClearCaptain"
)

// RosterServiceClient is a client for the bpl.roster.v1.RosterService service.
type RosterServiceClient interface {
	GetLineup(context.Context, *connect.Request[v1.GetLineupRequest]) (*connect.Response[v1.GetLineupResponse], error)
	Reorder(context.Context, *connect.Request[v1.ReorderRequest]) (*connect.Response[v1.ReorderResponse], error)
	SetCaptain(context.Context, *connect.Request[v1.SetCaptainRequest]) (*connect.Response[v1.SetCaptainResponse], error)
	ClearCaptain(context.Context, *connect.Request[v1.ClearCaptainRequest]) (*connect.Response[v1.ClearCaptainResponse], error)
}

// NewRosterServiceClient constructs a client for the bpl.roster.v1.RosterService service.
func NewRosterServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) RosterServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &rosterServiceClient{
		getLineup:    connect.NewClient[v1.GetLineupRequest, v1.GetLineupResponse](httpClient, baseURL+RosterServiceGetLineupProcedure, opts...),
		reorder:      connect.NewClient[v1.ReorderRequest, v1.ReorderResponse](httpClient, baseURL+RosterServiceReorderProcedure, opts...),
		setCaptain:   connect.NewClient[v1.SetCaptainRequest, v1.SetCaptainResponse](httpClient, baseURL+RosterServiceSetCaptainProcedure, opts...),
		clearCaptain: connect.NewClient[v1.ClearCaptainRequest, v1.ClearCaptainResponse](httpClient, baseURL+RosterServiceClearCaptainProcedure, opts...),
	}
}

type rosterServiceClient struct {
	getLineup    *connect.Client[v1.GetLineupRequest, v1.GetLineupResponse]
	reorder      *connect.Client[v1.ReorderRequest, v1.ReorderResponse]
	setCaptain   *connect.Client[v1.SetCaptainRequest, v1.SetCaptainResponse]
	clearCaptain *connect.Client[v1.ClearCaptainRequest, v1.ClearCaptainResponse]
}

func (c *rosterServiceClient) GetLineup(ctx context.Context, req *connect.Request[v1.GetLineupRequest]) (*connect.Response[v1.GetLineupResponse], error) {
	return c.getLineup.CallUnary(ctx, req)
}

func (c *rosterServiceClient) Reorder(ctx context.Context, req *connect.Request[v1.ReorderRequest]) (*connect.Response[v1.ReorderResponse], error) {
	return c.reorder.CallUnary(ctx, req)
}

func (c *rosterServiceClient) SetCaptain(ctx context.Context, req *connect.Request[v1.SetCaptainRequest]) (*connect.Response[v1.SetCaptainResponse], error) {
	return c.setCaptain.CallUnary(ctx, req)
}

func (c *rosterServiceClient) ClearCaptain(ctx context.Context, req *connect.Request[v1.ClearCaptainRequest]) (*connect.Response[v1.ClearCaptainResponse], error) {
	return c.clearCaptain.CallUnary(ctx, req)
}

// RosterServiceHandler is implemented by the server side of bpl.roster.v1.RosterService.
type RosterServiceHandler interface {
	GetLineup(context.Context, *connect.Request[v1.GetLineupRequest]) (*connect.Response[v1.GetLineupResponse], error)
	Reorder(context.Context, *connect.Request[v1.ReorderRequest]) (*connect.Response[v1.ReorderResponse], error)
	SetCaptain(context.Context, *connect.Request[v1.SetCaptainRequest]) (*connect.Response[v1.SetCaptainResponse], error)
	ClearCaptain(context.Context, *connect.Request[v1.ClearCaptainRequest]) (*connect.Response[v1.ClearCaptainResponse], error)
}

// NewRosterServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRosterServiceHandler(svc RosterServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	getLineupHandler := connect.NewUnaryHandler(RosterServiceGetLineupProcedure, svc.GetLineup, opts...)
	reorderHandler := connect.NewUnaryHandler(RosterServiceReorderProcedure, svc.Reorder, opts...)
	setCaptainHandler := connect.NewUnaryHandler(RosterServiceSetCaptainProcedure, svc.SetCaptain, opts...)
	clearCaptainHandler := connect.NewUnaryHandler(RosterServiceClearCaptainProcedure, svc.ClearCaptain, opts...)
	return "/bpl.roster.v1.RosterService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RosterServiceGetLineupProcedure:
			getLineupHandler.ServeHTTP(w, r)
		case RosterServiceReorderProcedure:
			reorderHandler.ServeHTTP(w, r)
		case RosterServiceSetCaptainProcedure:
			setCaptainHandler.ServeHTTP(w, r)
		case RosterServiceClearCaptainProcedure:
			clearCaptainHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
