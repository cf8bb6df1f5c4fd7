package roster

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(n int) *int { return &n }

func named(name string, battingOrder *int) models.Player {
	return models.Player{ID: uuid.New(), Name: name, BattingOrder: battingOrder}
}

func names(players []models.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func makeRoster(n int) ([]models.Player, []uuid.UUID) {
	roster := make([]models.Player, n)
	ids := make([]uuid.UUID, n)
	for i := range roster {
		roster[i] = models.Player{ID: uuid.New()}
		ids[i] = roster[i].ID
	}
	return roster, ids
}

func TestComputeInitialOrder(t *testing.T) {
	t.Run("ordered first then input order", func(t *testing.T) {
		in := []models.Player{
			named("A", order(3)),
			named("B", nil),
			named("C", order(1)),
		}
		assert.Equal(t, []string{"C", "A", "B"}, names(ComputeInitialOrder(in)))
		assert.Equal(t, []string{"A", "B", "C"}, names(in), "input must not be reordered")
	})

	t.Run("unordered players keep relative order", func(t *testing.T) {
		in := []models.Player{
			named("W", nil),
			named("X", order(2)),
			named("Y", nil),
			named("Z", nil),
		}
		assert.Equal(t, []string{"X", "W", "Y", "Z"}, names(ComputeInitialOrder(in)))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ComputeInitialOrder(nil))
	})
}

func TestPlanReorderDenseAssignment(t *testing.T) {
	for _, n := range []int{1, 5, 11} {
		roster, ids := makeRoster(n)
		plan, err := PlanReorder(roster, ids, ReorderAuthoritative)
		require.NoError(t, err)
		require.Len(t, plan.Assignments, n)
		for i, a := range plan.Assignments {
			assert.Equal(t, ids[i], a.PlayerID)
			assert.Equal(t, i+1, a.BattingOrder)
		}
		assert.Zero(t, plan.Truncated)
	}
}

func TestPlanReorderBeyondEleven(t *testing.T) {
	roster, ids := makeRoster(14)
	roster[12].BattingOrder = order(3)
	roster[13].BattingOrder = order(11)

	t.Run("authoritative clears the rest", func(t *testing.T) {
		plan, err := PlanReorder(roster, ids, ReorderAuthoritative)
		require.NoError(t, err)
		assert.Len(t, plan.Assignments, models.MaxBattingOrder)
		assert.Equal(t, 3, plan.Truncated)
		assert.ElementsMatch(t, []uuid.UUID{ids[12], ids[13]}, plan.Cleared)
	})

	t.Run("retain rejects colliding stale slots", func(t *testing.T) {
		_, err := PlanReorder(roster, ids, ReorderRetain)
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("retain leaves non colliding players alone", func(t *testing.T) {
		short := ids[:5]
		r := append([]models.Player(nil), roster...)
		r[12].BattingOrder = order(9)
		r[13].BattingOrder = nil
		plan, err := PlanReorder(r, short, ReorderRetain)
		require.NoError(t, err)
		assert.Len(t, plan.Assignments, 5)
		assert.Empty(t, plan.Cleared)
	})
}

func TestPlanReorderValidation(t *testing.T) {
	roster, ids := makeRoster(3)

	_, err := PlanReorder(roster, []uuid.UUID{ids[0], ids[1], ids[0]}, ReorderAuthoritative)
	assert.True(t, apperr.IsValidation(err))

	_, err = PlanReorder(roster, []uuid.UUID{ids[0], uuid.New()}, ReorderAuthoritative)
	assert.True(t, apperr.IsValidation(err))

	_, err = PlanReorder(nil, ids, ReorderAuthoritative)
	assert.True(t, apperr.IsNotFound(err))

	plan, err := PlanReorder(roster, nil, ReorderAuthoritative)
	require.NoError(t, err)
	assert.Empty(t, plan.Assignments)
}

func TestParseReorderMode(t *testing.T) {
	mode, err := ParseReorderMode("")
	require.NoError(t, err)
	assert.Equal(t, ReorderAuthoritative, mode)

	mode, err = ParseReorderMode("retain")
	require.NoError(t, err)
	assert.Equal(t, ReorderRetain, mode)

	_, err = ParseReorderMode("lenient")
	assert.Error(t, err)
}
