// Package teamv1 holds the messages of bpl.team.v1.TeamService. They are
// plain structs carried by the rpc JSON codec.
package teamv1

import "time"

type Team struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	LogoUrl     *string   `json:"logoUrl,omitempty"`
	HomeCity    *string   `json:"homeCity,omitempty"`
	FoundedYear *int32    `json:"foundedYear,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateTeamRequest struct {
	Name        string  `json:"name"`
	LogoUrl     *string `json:"logoUrl,omitempty"`
	HomeCity    *string `json:"homeCity,omitempty"`
	FoundedYear *int32  `json:"foundedYear,omitempty"`
}

type CreateTeamResponse struct {
	Team *Team `json:"team"`
}

type GetTeamRequest struct {
	Id string `json:"id"`
}

type GetTeamResponse struct {
	Team *Team `json:"team"`
}

type ListTeamsRequest struct {
	Search string `json:"search,omitempty"`
}

type ListTeamsResponse struct {
	Teams []*Team `json:"teams"`
}

// UpdateTeamRequest only changes the fields that are set.
type UpdateTeamRequest struct {
	Id          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	LogoUrl     *string `json:"logoUrl,omitempty"`
	HomeCity    *string `json:"homeCity,omitempty"`
	FoundedYear *int32  `json:"foundedYear,omitempty"`
}

type UpdateTeamResponse struct {
	Team *Team `json:"team"`
}

type DeleteTeamRequest struct {
	Id string `json:"id"`
}

type DeleteTeamResponse struct {
	Success        bool  `json:"success"`
	PlayersDeleted int64 `json:"playersDeleted"`
}
