package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	rosterv1 "github.com/mcdev12/bpl/go/internal/api/roster/v1"
	"github.com/mcdev12/bpl/go/internal/api/roster/v1/rosterv1connect"
	"github.com/mcdev12/bpl/go/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterServiceOverConnect(t *testing.T) {
	ctx := context.Background()
	app, store, teamID := newTestApp(ReorderAuthoritative)
	a := store.add(teamID, "A", nil)
	b := store.add(teamID, "B", nil)

	mux := http.NewServeMux()
	mux.Handle(rosterv1connect.NewRosterServiceHandler(NewService(app), rpc.HandlerOptions()...))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := rosterv1connect.NewRosterServiceClient(server.Client(), server.URL, rpc.ClientOptions()...)

	res, err := client.Reorder(ctx, connect.NewRequest(&rosterv1.ReorderRequest{
		TeamId:    teamID.String(),
		PlayerIds: []string{b.String(), a.String()},
	}))
	require.NoError(t, err)
	assert.True(t, res.Msg.Success)
	assert.Equal(t, int32(2), res.Msg.Assigned)
	require.Len(t, res.Msg.Players, 2)
	assert.Equal(t, "B", res.Msg.Players[0].Name)
	assert.Equal(t, int32(1), *res.Msg.Players[0].BattingOrder)

	_, err = client.Reorder(ctx, connect.NewRequest(&rosterv1.ReorderRequest{
		TeamId:    teamID.String(),
		PlayerIds: []string{a.String(), a.String()},
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.Reorder(ctx, connect.NewRequest(&rosterv1.ReorderRequest{
		TeamId:    uuid.NewString(),
		PlayerIds: []string{a.String()},
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.SetCaptain(ctx, connect.NewRequest(&rosterv1.SetCaptainRequest{TeamId: "nope", PlayerId: a.String()}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	captain, err := client.SetCaptain(ctx, connect.NewRequest(&rosterv1.SetCaptainRequest{
		TeamId:   teamID.String(),
		PlayerId: a.String(),
	}))
	require.NoError(t, err)
	assert.True(t, captain.Msg.Player.IsCaptain)

	lineup, err := client.GetLineup(ctx, connect.NewRequest(&rosterv1.GetLineupRequest{TeamId: teamID.String()}))
	require.NoError(t, err)
	assert.Equal(t, "B", lineup.Msg.Players[0].Name)
}
