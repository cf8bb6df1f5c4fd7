package player

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo applies the same captain rules the SQL repository does.
type memRepo struct {
	players map[uuid.UUID]*models.Player
	batches int
}

func newMemRepo() *memRepo {
	return &memRepo{players: map[uuid.UUID]*models.Player{}}
}

func (m *memRepo) clearCaptain(teamID, except uuid.UUID) {
	for _, p := range m.players {
		if p.TeamID == teamID && p.ID != except {
			p.IsCaptain = false
		}
	}
}

func (m *memRepo) CreatePlayers(_ context.Context, reqs []CreatePlayerRequest) ([]models.Player, error) {
	m.batches++
	for _, req := range reqs {
		if req.IsCaptain {
			m.clearCaptain(req.TeamID, uuid.Nil)
		}
	}
	out := make([]models.Player, 0, len(reqs))
	for _, req := range reqs {
		p := &models.Player{
			ID:             uuid.New(),
			TeamID:         req.TeamID,
			Name:           req.Name,
			City:           req.City,
			IsCaptain:      req.IsCaptain,
			IsWicketKeeper: req.IsWicketKeeper,
			PlayingRole:    req.PlayingRole,
			BattingOrder:   req.BattingOrder,
		}
		m.players[p.ID] = p
		out = append(out, *p)
	}
	return out, nil
}

func (m *memRepo) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return nil, apperr.NotFound("player %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) ListPlayers(_ context.Context, filter PlayerFilter) ([]models.Player, error) {
	var out []models.Player
	for _, p := range m.players {
		if filter.TeamID == nil || p.TeamID == *filter.TeamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) UpdatePlayer(_ context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return nil, apperr.NotFound("player %s not found", id)
	}
	if req.TeamID != nil {
		p.TeamID = *req.TeamID
	}
	if req.IsCaptain != nil {
		if *req.IsCaptain {
			m.clearCaptain(p.TeamID, id)
		}
		p.IsCaptain = *req.IsCaptain
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ClearBattingOrder {
		p.BattingOrder = nil
	} else if req.BattingOrder != nil {
		p.BattingOrder = req.BattingOrder
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) DeletePlayer(_ context.Context, id uuid.UUID) error {
	if _, ok := m.players[id]; !ok {
		return apperr.NotFound("player %s not found", id)
	}
	delete(m.players, id)
	return nil
}

func (m *memRepo) captains(teamID uuid.UUID) []string {
	var names []string
	for _, p := range m.players {
		if p.TeamID == teamID && p.IsCaptain {
			names = append(names, p.Name)
		}
	}
	return names
}

type stubTeams map[uuid.UUID]bool

func (s stubTeams) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	if !s[id] {
		return nil, apperr.NotFound("team %s not found", id)
	}
	return &models.Team{ID: id}, nil
}

func ptr[T any](v T) *T { return &v }

func setup() (*App, *memRepo, uuid.UUID, uuid.UUID) {
	teamA, teamB := uuid.New(), uuid.New()
	repo := newMemRepo()
	return NewApp(repo, stubTeams{teamA: true, teamB: true}), repo, teamA, teamB
}

func batsman(teamID uuid.UUID, name string) CreatePlayerRequest {
	return CreatePlayerRequest{TeamID: teamID, Name: name, PlayingRole: models.PlayingRoleBatsman}
}

func TestCreatePlayerValidation(t *testing.T) {
	ctx := context.Background()
	app, repo, teamA, _ := setup()

	tests := []struct {
		name string
		req  CreatePlayerRequest
	}{
		{name: "blank name", req: batsman(teamA, "  ")},
		{name: "missing team", req: batsman(uuid.Nil, "Rohit")},
		{name: "bad role", req: CreatePlayerRequest{TeamID: teamA, Name: "Rohit", PlayingRole: "Keeper"}},
		{name: "order zero", req: func() CreatePlayerRequest { r := batsman(teamA, "Rohit"); r.BattingOrder = ptr(0); return r }()},
		{name: "order twelve", req: func() CreatePlayerRequest { r := batsman(teamA, "Rohit"); r.BattingOrder = ptr(12); return r }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.CreatePlayer(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
	assert.Zero(t, repo.batches)

	_, err := app.CreatePlayer(ctx, batsman(uuid.New(), "Nobody"))
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreatePlayerTrims(t *testing.T) {
	app, _, teamA, _ := setup()

	req := batsman(teamA, "  Virat ")
	req.City = ptr(" Delhi  ")
	p, err := app.CreatePlayer(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Virat", p.Name)
	assert.Equal(t, "Delhi", *p.City)
}

func TestCreatePlayersLeavesRequestsUntouched(t *testing.T) {
	app, _, teamA, _ := setup()

	first := batsman(teamA, "  Rohit ")
	first.City = ptr(" Mumbai ")
	reqs := []CreatePlayerRequest{first, batsman(teamA, " Shubman")}

	players, err := app.CreatePlayers(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Rohit", players[0].Name)
	assert.Equal(t, "Mumbai", *players[0].City)

	assert.Equal(t, "  Rohit ", reqs[0].Name)
	assert.Equal(t, " Mumbai ", *reqs[0].City)
	assert.Equal(t, " Shubman", reqs[1].Name)
}

func TestNewCaptainReplacesOld(t *testing.T) {
	ctx := context.Background()
	app, repo, teamA, teamB := setup()

	first := batsman(teamA, "Old Skipper")
	first.IsCaptain = true
	_, err := app.CreatePlayer(ctx, first)
	require.NoError(t, err)

	other := batsman(teamB, "Other Skipper")
	other.IsCaptain = true
	_, err = app.CreatePlayer(ctx, other)
	require.NoError(t, err)

	second := batsman(teamA, "New Skipper")
	second.IsCaptain = true
	created, err := app.CreatePlayer(ctx, second)
	require.NoError(t, err)
	assert.True(t, created.IsCaptain)

	assert.Equal(t, []string{"New Skipper"}, repo.captains(teamA))
	assert.Equal(t, []string{"Other Skipper"}, repo.captains(teamB))
}

func TestCreatePlayersBatchRules(t *testing.T) {
	ctx := context.Background()

	t.Run("two captains for one team rejected", func(t *testing.T) {
		app, repo, teamA, _ := setup()
		a, b := batsman(teamA, "A"), batsman(teamA, "B")
		a.IsCaptain, b.IsCaptain = true, true

		_, err := app.CreatePlayers(ctx, []CreatePlayerRequest{a, b})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Zero(t, repo.batches)
	})

	t.Run("one captain per team accepted", func(t *testing.T) {
		app, repo, teamA, teamB := setup()
		a, b := batsman(teamA, "A"), batsman(teamB, "B")
		a.IsCaptain, b.IsCaptain = true, true

		players, err := app.CreatePlayers(ctx, []CreatePlayerRequest{a, b, batsman(teamA, "C")})
		require.NoError(t, err)
		assert.Len(t, players, 3)
		assert.Equal(t, 1, repo.batches)
		assert.Equal(t, []string{"A"}, repo.captains(teamA))
	})

	t.Run("repeated batting order within a team rejected", func(t *testing.T) {
		app, _, teamA, teamB := setup()
		a, b, c := batsman(teamA, "A"), batsman(teamA, "B"), batsman(teamB, "C")
		a.BattingOrder, b.BattingOrder, c.BattingOrder = ptr(1), ptr(1), ptr(1)

		_, err := app.CreatePlayers(ctx, []CreatePlayerRequest{a, c})
		require.NoError(t, err)

		_, err = app.CreatePlayers(ctx, []CreatePlayerRequest{a, b})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		app, _, _, _ := setup()
		_, err := app.CreatePlayers(ctx, nil)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestUpdatePlayerTeamMove(t *testing.T) {
	ctx := context.Background()
	app, repo, teamA, teamB := setup()

	req := batsman(teamA, "Mover")
	req.IsCaptain = true
	req.BattingOrder = ptr(3)
	p, err := app.CreatePlayer(ctx, req)
	require.NoError(t, err)

	moved, err := app.UpdatePlayer(ctx, p.ID, UpdatePlayerRequest{TeamID: &teamB})
	require.NoError(t, err)
	assert.Equal(t, teamB, moved.TeamID)
	assert.Nil(t, moved.BattingOrder)
	assert.False(t, moved.IsCaptain)
	assert.Empty(t, repo.captains(teamA))

	kept, err := app.UpdatePlayer(ctx, p.ID, UpdatePlayerRequest{TeamID: &teamA, BattingOrder: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, *kept.BattingOrder)

	_, err = app.UpdatePlayer(ctx, p.ID, UpdatePlayerRequest{TeamID: ptr(uuid.New())})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdatePlayerCaptain(t *testing.T) {
	ctx := context.Background()
	app, repo, teamA, _ := setup()

	first := batsman(teamA, "First")
	first.IsCaptain = true
	_, err := app.CreatePlayer(ctx, first)
	require.NoError(t, err)
	second, err := app.CreatePlayer(ctx, batsman(teamA, "Second"))
	require.NoError(t, err)

	_, err = app.UpdatePlayer(ctx, second.ID, UpdatePlayerRequest{IsCaptain: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Second"}, repo.captains(teamA))

	_, err = app.UpdatePlayer(ctx, second.ID, UpdatePlayerRequest{BattingOrder: ptr(2), ClearBattingOrder: true})
	assert.True(t, apperr.IsValidation(err))

	_, err = app.UpdatePlayer(ctx, second.ID, UpdatePlayerRequest{PlayingRole: ptr(models.PlayingRole("WK"))})
	assert.True(t, apperr.IsValidation(err))
}

func TestDeletePlayer(t *testing.T) {
	ctx := context.Background()
	app, _, teamA, _ := setup()

	p, err := app.CreatePlayer(ctx, batsman(teamA, "Gone"))
	require.NoError(t, err)

	require.NoError(t, app.DeletePlayer(ctx, p.ID))
	_, err = app.GetPlayer(ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(app.DeletePlayer(ctx, p.ID)))
}
