package teams

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	teamv1 "github.com/mcdev12/bpl/go/internal/api/team/v1"
	"github.com/mcdev12/bpl/go/internal/api/team/v1/teamv1connect"
	"github.com/mcdev12/bpl/go/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) teamv1connect.TeamServiceClient {
	t.Helper()
	app, _ := newTestApp()

	mux := http.NewServeMux()
	path, handler := teamv1connect.NewTeamServiceHandler(NewService(app), rpc.HandlerOptions()...)
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return teamv1connect.NewTeamServiceClient(server.Client(), server.URL, rpc.ClientOptions()...)
}

func TestServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	year := int32(2008)
	created, err := client.CreateTeam(ctx, connect.NewRequest(&teamv1.CreateTeamRequest{
		Name:        "Mumbai Mavericks",
		FoundedYear: &year,
	}))
	require.NoError(t, err)
	team := created.Msg.Team
	require.NotNil(t, team)
	assert.Equal(t, "Mumbai Mavericks", team.Name)
	assert.Equal(t, int32(2008), *team.FoundedYear)

	got, err := client.GetTeam(ctx, connect.NewRequest(&teamv1.GetTeamRequest{Id: team.Id}))
	require.NoError(t, err)
	assert.Equal(t, team.Id, got.Msg.Team.Id)

	listed, err := client.ListTeams(ctx, connect.NewRequest(&teamv1.ListTeamsRequest{Search: "maver"}))
	require.NoError(t, err)
	assert.Len(t, listed.Msg.Teams, 1)

	deleted, err := client.DeleteTeam(ctx, connect.NewRequest(&teamv1.DeleteTeamRequest{Id: team.Id}))
	require.NoError(t, err)
	assert.True(t, deleted.Msg.Success)
}

func TestServiceErrorCodes(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.CreateTeam(ctx, connect.NewRequest(&teamv1.CreateTeamRequest{Name: ""}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.GetTeam(ctx, connect.NewRequest(&teamv1.GetTeamRequest{Id: "not-a-uuid"}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.GetTeam(ctx, connect.NewRequest(&teamv1.GetTeamRequest{Id: uuid.NewString()}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.CreateTeam(ctx, connect.NewRequest(&teamv1.CreateTeamRequest{Name: "Dup"}))
	require.NoError(t, err)
	_, err = client.CreateTeam(ctx, connect.NewRequest(&teamv1.CreateTeamRequest{Name: "dup"}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, "conflict", connectErr.Meta().Get(rpc.ErrorKindHeader))
	assert.Equal(t, `team name "dup" already exists`, connectErr.Message())
}
