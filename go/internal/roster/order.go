package roster

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/models"
)

// ReorderMode decides what happens to team players left out of the top 11
// of a reorder.
type ReorderMode string

const (
	// ReorderAuthoritative clears the batting order of every team player
	// that is not in the submitted top 11.
	ReorderAuthoritative ReorderMode = "authoritative"
	// ReorderRetain leaves players outside the top 11 untouched and rejects
	// the reorder when one of them still holds a slot being reassigned.
	ReorderRetain ReorderMode = "retain"
)

// ParseReorderMode parses a configured mode. Empty means authoritative.
func ParseReorderMode(s string) (ReorderMode, error) {
	switch ReorderMode(s) {
	case "", ReorderAuthoritative:
		return ReorderAuthoritative, nil
	case ReorderRetain:
		return ReorderRetain, nil
	default:
		return "", fmt.Errorf("unknown reorder mode %q", s)
	}
}

// Assignment gives a player a batting slot.
type Assignment struct {
	PlayerID     uuid.UUID `json:"player_id"`
	BattingOrder int       `json:"batting_order"`
}

// ReorderPlan is the set of writes a reorder performs.
type ReorderPlan struct {
	Mode        ReorderMode  `json:"mode"`
	Assignments []Assignment `json:"assignments"`
	Cleared     []uuid.UUID  `json:"cleared,omitempty"`
	Truncated   int          `json:"truncated,omitempty"` // ids past slot 11
}

// ComputeInitialOrder sorts players for display: players with a batting
// order first in ascending order, then the rest in their input order. The
// input slice is not modified.
func ComputeInitialOrder(players []models.Player) []models.Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b models.Player) int {
		switch {
		case a.BattingOrder != nil && b.BattingOrder != nil:
			return cmp.Compare(*a.BattingOrder, *b.BattingOrder)
		case a.BattingOrder != nil:
			return -1
		case b.BattingOrder != nil:
			return 1
		default:
			return 0
		}
	})
	return out
}

// PlanReorder validates orderedIDs against the team's roster and works out
// the assignments for the first 11 of them.
func PlanReorder(roster []models.Player, orderedIDs []uuid.UUID, mode ReorderMode) (*ReorderPlan, error) {
	if len(roster) == 0 {
		return nil, apperr.NotFound("team has no players")
	}

	byID := make(map[uuid.UUID]models.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return nil, apperr.Validation("player %s appears more than once", id)
		}
		if _, ok := byID[id]; !ok {
			return nil, apperr.Validation("player %s does not belong to this team", id)
		}
		seen[id] = true
	}

	top := orderedIDs
	if len(top) > models.MaxBattingOrder {
		top = top[:models.MaxBattingOrder]
	}

	plan := &ReorderPlan{
		Mode:        mode,
		Assignments: make([]Assignment, len(top)),
		Truncated:   len(orderedIDs) - len(top),
	}
	assigned := make(map[uuid.UUID]bool, len(top))
	for i, id := range top {
		plan.Assignments[i] = Assignment{PlayerID: id, BattingOrder: i + 1}
		assigned[id] = true
	}

	for _, p := range roster {
		if assigned[p.ID] || p.BattingOrder == nil {
			continue
		}
		switch mode {
		case ReorderRetain:
			if *p.BattingOrder <= len(top) {
				return nil, apperr.Conflict(
					"player %s keeps batting order %d, which this reorder assigns to another player",
					p.ID, *p.BattingOrder)
			}
		default:
			plan.Cleared = append(plan.Cleared, p.ID)
		}
	}

	return plan, nil
}
