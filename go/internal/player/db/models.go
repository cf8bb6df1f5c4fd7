package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Player struct {
	ID             uuid.UUID
	TeamID         uuid.UUID
	Name           string
	ImageUrl       pgtype.Text
	City           pgtype.Text
	IsCaptain      bool
	IsWicketKeeper bool
	PlayingRole    string
	BattingOrder   pgtype.Int4
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
