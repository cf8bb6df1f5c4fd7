package roster

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore applies plans the way the Postgres store does: all writes or
// none, with slot uniqueness checked once at the end.
type memStore struct {
	teams   map[uuid.UUID]bool
	players []models.Player
}

func (m *memStore) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	if !m.teams[id] {
		return nil, apperr.NotFound("team %s not found", id)
	}
	return &models.Team{ID: id}, nil
}

func (m *memStore) teamPlayers(teamID uuid.UUID) []models.Player {
	var out []models.Player
	for _, p := range m.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

func (m *memStore) ListTeamPlayers(_ context.Context, teamID uuid.UUID) ([]models.Player, error) {
	return m.teamPlayers(teamID), nil
}

func (m *memStore) BulkSetBattingOrder(_ context.Context, teamID uuid.UUID, planFn PlanFunc) (*ReorderResult, error) {
	plan, err := planFn(m.teamPlayers(teamID))
	if err != nil {
		return nil, err
	}

	next := make([]models.Player, len(m.players))
	copy(next, m.players)
	slot := make(map[uuid.UUID]int, len(plan.Assignments))
	for _, a := range plan.Assignments {
		slot[a.PlayerID] = a.BattingOrder
	}
	for i := range next {
		if next[i].TeamID != teamID {
			continue
		}
		if o, ok := slot[next[i].ID]; ok {
			next[i].BattingOrder = order(o)
		} else if plan.Mode == ReorderAuthoritative {
			next[i].BattingOrder = nil
		}
	}

	taken := map[int]bool{}
	for _, p := range next {
		if p.TeamID != teamID || p.BattingOrder == nil {
			continue
		}
		if taken[*p.BattingOrder] {
			return nil, apperr.Conflict("duplicate batting order %d", *p.BattingOrder)
		}
		taken[*p.BattingOrder] = true
	}

	m.players = next
	return &ReorderResult{Plan: plan, Players: m.teamPlayers(teamID)}, nil
}

func (m *memStore) AssignCaptain(_ context.Context, teamID, playerID uuid.UUID) (*models.Player, error) {
	idx := -1
	for i, p := range m.players {
		if p.ID == playerID && p.TeamID == teamID {
			idx = i
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("player %s not found in team %s", playerID, teamID)
	}
	for i := range m.players {
		if m.players[i].TeamID == teamID {
			m.players[i].IsCaptain = i == idx
		}
	}
	p := m.players[idx]
	return &p, nil
}

func (m *memStore) ClearCaptain(_ context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	for i := range m.players {
		if m.players[i].TeamID == teamID && m.players[i].IsCaptain {
			m.players[i].IsCaptain = false
			n++
		}
	}
	return n, nil
}

func (m *memStore) add(teamID uuid.UUID, name string, battingOrder *int) uuid.UUID {
	p := models.Player{ID: uuid.New(), TeamID: teamID, Name: name, BattingOrder: battingOrder}
	m.players = append(m.players, p)
	return p.ID
}

func (m *memStore) captains(teamID uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, p := range m.teamPlayers(teamID) {
		if p.IsCaptain {
			out = append(out, p.ID)
		}
	}
	return out
}

func newTestApp(mode ReorderMode) (*App, *memStore, uuid.UUID) {
	teamID := uuid.New()
	store := &memStore{teams: map[uuid.UUID]bool{teamID: true}}
	return NewApp(store, store, mode), store, teamID
}

func assertUniqueSlots(t *testing.T, players []models.Player) {
	t.Helper()
	seen := map[int]bool{}
	for _, p := range players {
		if p.BattingOrder == nil {
			continue
		}
		assert.GreaterOrEqual(t, *p.BattingOrder, 1)
		assert.LessOrEqual(t, *p.BattingOrder, models.MaxBattingOrder)
		assert.False(t, seen[*p.BattingOrder], "slot %d assigned twice", *p.BattingOrder)
		seen[*p.BattingOrder] = true
	}
}

func TestReorderAssignsSlots(t *testing.T) {
	ctx := context.Background()
	app, store, teamID := newTestApp(ReorderAuthoritative)

	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		ids = append(ids, store.add(teamID, string(rune('A'+i)), nil))
	}
	reversed := []uuid.UUID{ids[3], ids[2], ids[1], ids[0]}

	result, err := app.Reorder(ctx, teamID, reversed)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C", "B", "A"}, names(result.Players))
	for i, p := range result.Players {
		assert.Equal(t, i+1, *p.BattingOrder)
	}
}

func TestReorderFourteenPlayers(t *testing.T) {
	ctx := context.Background()

	build := func(mode ReorderMode) (*App, *memStore, uuid.UUID, []uuid.UUID) {
		app, store, teamID := newTestApp(mode)
		var ids []uuid.UUID
		for i := 0; i < 14; i++ {
			ids = append(ids, store.add(teamID, string(rune('a'+i)), nil))
		}
		return app, store, teamID, ids
	}

	t.Run("authoritative", func(t *testing.T) {
		app, store, teamID, ids := build(ReorderAuthoritative)
		store.players[13].BattingOrder = order(11)

		result, err := app.Reorder(ctx, teamID, ids)
		require.NoError(t, err)
		assertUniqueSlots(t, result.Players)
		for _, p := range store.players[11:] {
			assert.Nil(t, p.BattingOrder)
		}
		assert.Equal(t, 3, result.Plan.Truncated)
	})

	t.Run("retain leaves extras untouched", func(t *testing.T) {
		app, store, teamID, ids := build(ReorderRetain)

		result, err := app.Reorder(ctx, teamID, ids)
		require.NoError(t, err)
		assertUniqueSlots(t, result.Players)
		for _, p := range store.players[11:] {
			assert.Nil(t, p.BattingOrder)
		}
	})

	t.Run("retain rejects stale collision without writing", func(t *testing.T) {
		app, store, teamID, ids := build(ReorderRetain)
		store.players[12].BattingOrder = order(2)
		before := append([]models.Player(nil), store.players...)

		_, err := app.Reorder(ctx, teamID, ids)
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, before, store.players)
	})
}

func TestReorderSwapAndStability(t *testing.T) {
	ctx := context.Background()
	app, store, teamID := newTestApp(ReorderAuthoritative)

	a := store.add(teamID, "A", order(1))
	b := store.add(teamID, "B", order(2))
	store.add(teamID, "C", nil)

	result, err := app.Reorder(ctx, teamID, []uuid.UUID{b, a})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(result.Players))
	assertUniqueSlots(t, result.Players)

	lineup, err := app.GetLineup(ctx, teamID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(lineup))
	assert.Nil(t, lineup[2].BattingOrder)
}

func TestReorderErrors(t *testing.T) {
	ctx := context.Background()
	app, store, teamID := newTestApp(ReorderAuthoritative)

	_, err := app.Reorder(ctx, teamID, nil)
	assert.True(t, apperr.IsNotFound(err), "team without players")

	a := store.add(teamID, "A", nil)
	_, err = app.Reorder(ctx, teamID, []uuid.UUID{a, a})
	assert.True(t, apperr.IsValidation(err))

	_, err = app.Reorder(ctx, teamID, []uuid.UUID{uuid.New()})
	assert.True(t, apperr.IsValidation(err))

	_, err = app.GetLineup(ctx, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestSetCaptainIsExclusive(t *testing.T) {
	ctx := context.Background()
	app, store, teamID := newTestApp(ReorderAuthoritative)
	otherTeam := uuid.New()
	store.teams[otherTeam] = true

	p := store.add(teamID, "P", nil)
	q := store.add(teamID, "Q", nil)
	outsider := store.add(otherTeam, "O", nil)
	_, err := app.SetCaptain(ctx, otherTeam, outsider)
	require.NoError(t, err)

	_, err = app.SetCaptain(ctx, teamID, p)
	require.NoError(t, err)
	captain, err := app.SetCaptain(ctx, teamID, q)
	require.NoError(t, err)
	assert.True(t, captain.IsCaptain)
	assert.Equal(t, []uuid.UUID{q}, store.captains(teamID))

	_, err = app.SetCaptain(ctx, teamID, q)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{q}, store.captains(teamID))
	assert.Equal(t, []uuid.UUID{outsider}, store.captains(otherTeam))

	_, err = app.SetCaptain(ctx, teamID, outsider)
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, app.ClearCaptain(ctx, teamID))
	assert.Empty(t, store.captains(teamID))
	assert.True(t, apperr.IsNotFound(app.ClearCaptain(ctx, uuid.New())))
}

func TestGetLineup(t *testing.T) {
	ctx := context.Background()
	app, store, teamID := newTestApp(ReorderAuthoritative)

	bench := store.add(teamID, "Bench", nil)
	third := store.add(teamID, "Third", order(3))
	first := store.add(teamID, "First", order(1))

	lineup, err := app.GetLineup(ctx, teamID)
	require.NoError(t, err)
	require.Len(t, lineup, 3)
	assert.Equal(t, []uuid.UUID{first, third, bench}, []uuid.UUID{lineup[0].ID, lineup[1].ID, lineup[2].ID})

	_, err = app.GetLineup(ctx, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
