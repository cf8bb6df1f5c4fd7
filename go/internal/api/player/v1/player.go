// Package playerv1 holds the messages of bpl.player.v1.PlayerService.
package playerv1

import "time"

type Player struct {
	Id             string    `json:"id"`
	TeamId         string    `json:"teamId"`
	Name           string    `json:"name"`
	ImageUrl       *string   `json:"imageUrl,omitempty"`
	City           *string   `json:"city,omitempty"`
	IsCaptain      bool      `json:"isCaptain"`
	IsWicketKeeper bool      `json:"isWicketKeeper"`
	PlayingRole    string    `json:"playingRole"`
	BattingOrder   *int32    `json:"battingOrder,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreatePlayerRequest struct {
	TeamId         string  `json:"teamId"`
	Name           string  `json:"name"`
	ImageUrl       *string `json:"imageUrl,omitempty"`
	City           *string `json:"city,omitempty"`
	IsCaptain      bool    `json:"isCaptain"`
	IsWicketKeeper bool    `json:"isWicketKeeper"`
	PlayingRole    string  `json:"playingRole"`
	BattingOrder   *int32  `json:"battingOrder,omitempty"`
}

type CreatePlayerResponse struct {
	Player *Player `json:"player"`
}

// CreatePlayersRequest creates every player in one transaction.
type CreatePlayersRequest struct {
	Players []*CreatePlayerRequest `json:"players"`
}

type CreatePlayersResponse struct {
	Players []*Player `json:"players"`
}

type GetPlayerRequest struct {
	Id string `json:"id"`
}

type GetPlayerResponse struct {
	Player *Player `json:"player"`
}

type ListPlayersRequest struct {
	TeamId string `json:"teamId,omitempty"`
	Search string `json:"search,omitempty"`
}

type ListPlayersResponse struct {
	Players []*Player `json:"players"`
}

type UpdatePlayerRequest struct {
	Id                string  `json:"id"`
	TeamId            *string `json:"teamId,omitempty"`
	Name              *string `json:"name,omitempty"`
	ImageUrl          *string `json:"imageUrl,omitempty"`
	City              *string `json:"city,omitempty"`
	IsCaptain         *bool   `json:"isCaptain,omitempty"`
	IsWicketKeeper    *bool   `json:"isWicketKeeper,omitempty"`
	PlayingRole       *string `json:"playingRole,omitempty"`
	BattingOrder      *int32  `json:"battingOrder,omitempty"`
	ClearBattingOrder bool    `json:"clearBattingOrder,omitempty"`
}

type UpdatePlayerResponse struct {
	Player *Player `json:"player"`
}

type DeletePlayerRequest struct {
	Id string `json:"id"`
}

type DeletePlayerResponse struct {
	Success bool `json:"success"`
}
