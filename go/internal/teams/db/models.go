package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Team struct {
	ID          uuid.UUID
	Name        string
	LogoUrl     pgtype.Text
	HomeCity    pgtype.Text
	FoundedYear pgtype.Int4
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
