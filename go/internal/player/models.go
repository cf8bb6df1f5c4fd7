package player

import (
	"github.com/google/uuid"
	"github.com/mcdev12/bpl/go/internal/models"
)

// CreatePlayerRequest represents the data needed to create a new player
type CreatePlayerRequest struct {
	TeamID         uuid.UUID          `json:"team_id"`
	Name           string             `json:"name"`
	ImageURL       *string            `json:"image_url,omitempty"`
	City           *string            `json:"city,omitempty"`
	IsCaptain      bool               `json:"is_captain"`
	IsWicketKeeper bool               `json:"is_wicket_keeper"`
	PlayingRole    models.PlayingRole `json:"playing_role"`
	BattingOrder   *int               `json:"batting_order,omitempty"`
}

// UpdatePlayerRequest represents the fields that can be changed on a player.
// Nil fields are left untouched.
type UpdatePlayerRequest struct {
	TeamID            *uuid.UUID          `json:"team_id,omitempty"`
	Name              *string             `json:"name,omitempty"`
	ImageURL          *string             `json:"image_url,omitempty"`
	City              *string             `json:"city,omitempty"`
	IsCaptain         *bool               `json:"is_captain,omitempty"`
	IsWicketKeeper    *bool               `json:"is_wicket_keeper,omitempty"`
	PlayingRole       *models.PlayingRole `json:"playing_role,omitempty"`
	BattingOrder      *int                `json:"batting_order,omitempty"`
	ClearBattingOrder bool                `json:"clear_batting_order,omitempty"`
}

// PlayerFilter represents filtering options for player queries
type PlayerFilter struct {
	TeamID *uuid.UUID `json:"team_id,omitempty"`
	Search string     `json:"search,omitempty"`
}
