package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a cricket team that owns a roster of players
type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	HomeCity    *string   `json:"home_city,omitempty"`
	FoundedYear *int      `json:"founded_year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
