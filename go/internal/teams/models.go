package teams

// CreateTeamRequest represents the data needed to create a new team
type CreateTeamRequest struct {
	Name        string  `json:"name" validate:"required"`
	LogoURL     *string `json:"logo_url,omitempty"`
	HomeCity    *string `json:"home_city,omitempty"`
	FoundedYear *int    `json:"founded_year,omitempty"`
}

// UpdateTeamRequest represents the data that can be updated for a team
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
	HomeCity    *string `json:"home_city,omitempty"`
	FoundedYear *int    `json:"founded_year,omitempty"`
}

// TeamFilter represents filtering options for team queries
type TeamFilter struct {
	Search string `json:"search,omitempty"` // case-insensitive substring of the name
}

// DeleteResult reports what a team deletion removed
type DeleteResult struct {
	PlayersDeleted int64 `json:"players_deleted"`
}

const minFoundedYear = 1800
