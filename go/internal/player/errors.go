package player

import (
	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/sqlutil"
)

// Constraint names from the players table.
const (
	ConstraintBattingOrder = "players_team_batting_order_key"
	ConstraintCaptain      = "players_team_captain_key"
)

// TranslateWriteError turns constraint violations raised by a players write
// (or by the commit, for the deferred batting order constraint) into apperr
// kinds. Other errors are returned unchanged.
func TranslateWriteError(err error) error {
	if constraint, ok := sqlutil.UniqueViolation(err); ok {
		switch constraint {
		case ConstraintBattingOrder:
			return apperr.Conflict("batting order is already taken by another player in this team")
		case ConstraintCaptain:
			return apperr.Conflict("team already has a captain")
		default:
			return apperr.Conflict("player conflicts with an existing player")
		}
	}
	if _, ok := sqlutil.ForeignKeyViolation(err); ok {
		return apperr.NotFound("team not found")
	}
	if constraint, ok := sqlutil.CheckViolation(err); ok {
		return apperr.Validation("player violates %s", constraint)
	}
	return err
}
