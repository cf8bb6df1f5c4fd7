package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxBattingOrder is the number of batting slots a team has.
const MaxBattingOrder = 11

// PlayingRole represents what a player does on the field
type PlayingRole string

const (
	PlayingRoleBatsman    PlayingRole = "Bat"
	PlayingRoleBowler     PlayingRole = "Bowl"
	PlayingRoleAllRounder PlayingRole = "A.R"
)

// Valid reports whether r is one of the known playing roles.
func (r PlayingRole) Valid() bool {
	switch r {
	case PlayingRoleBatsman, PlayingRoleBowler, PlayingRoleAllRounder:
		return true
	default:
		return false
	}
}

// Player represents a member of a team's roster
type Player struct {
	ID             uuid.UUID   `json:"id"`
	TeamID         uuid.UUID   `json:"team_id"`
	Name           string      `json:"name"`
	ImageURL       *string     `json:"image_url,omitempty"`
	City           *string     `json:"city,omitempty"`
	IsCaptain      bool        `json:"is_captain"`
	IsWicketKeeper bool        `json:"is_wicket_keeper"`
	PlayingRole    PlayingRole `json:"playing_role"`
	BattingOrder   *int        `json:"batting_order,omitempty"` // 1..11 when set
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// HasBattingOrder reports whether the player currently holds a batting slot.
func (p Player) HasBattingOrder() bool {
	return p.BattingOrder != nil
}
