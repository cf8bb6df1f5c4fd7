// Package rosterv1 holds the messages of bpl.roster.v1.RosterService.
package rosterv1

import playerv1 "github.com/mcdev12/bpl/go/internal/api/player/v1"

type GetLineupRequest struct {
	TeamId string `json:"teamId"`
}

// GetLineupResponse lists the team's players in batting order, unordered
// players last.
type GetLineupResponse struct {
	Players []*playerv1.Player `json:"players"`
}

type ReorderRequest struct {
	TeamId    string   `json:"teamId"`
	PlayerIds []string `json:"playerIds"`
}

type ReorderResponse struct {
	Success  bool               `json:"success"`
	Assigned int32              `json:"assigned"`
	Cleared  int32              `json:"cleared"`
	Players  []*playerv1.Player `json:"players"`
}

type SetCaptainRequest struct {
	TeamId   string `json:"teamId"`
	PlayerId string `json:"playerId"`
}

type SetCaptainResponse struct {
	Success bool             `json:"success"`
	Player  *playerv1.Player `json:"player"`
}

type ClearCaptainRequest struct {
	TeamId string `json:"teamId"`
}

type ClearCaptainResponse struct {
	Success bool `json:"success"`
}
