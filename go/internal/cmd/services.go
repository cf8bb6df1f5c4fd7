package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/bpl/go/internal/auth"
	"github.com/mcdev12/bpl/go/internal/blobstore"
	"github.com/mcdev12/bpl/go/internal/export"
	"github.com/mcdev12/bpl/go/internal/player"
	playerdb "github.com/mcdev12/bpl/go/internal/player/db"
	"github.com/mcdev12/bpl/go/internal/roster"
	"github.com/mcdev12/bpl/go/internal/teams"
	teamsdb "github.com/mcdev12/bpl/go/internal/teams/db"
)

type Services struct {
	Teams   *teams.Service
	Players *player.Service
	Roster  *roster.Service

	Export *export.Handler
	Blobs  *blobstore.Handler
	Auth   *auth.Handler

	Sessions *auth.Sessions
}

func setupServices(pool *pgxpool.Pool, config *Config, blobs *blobstore.Store, clock clockwork.Clock) (*Services, error) {
	// Database layer → Repository layer → App layer → Service layer

	// Teams
	teamsRepo := teams.NewRepository(pool, teamsdb.New(pool))
	teamsApp := teams.NewApp(teamsRepo, clock)
	teamsService := teams.NewService(teamsApp)

	// Players
	playerQueries := playerdb.New(pool)
	playerRepo := player.NewRepository(pool, playerQueries)
	playerApp := player.NewApp(playerRepo, teamsApp)
	playerService := player.NewService(playerApp)

	// Roster
	mode, err := roster.ParseReorderMode(config.Roster.ReorderMode)
	if err != nil {
		return nil, err
	}
	rosterRepo := roster.NewRepository(pool, playerQueries)
	rosterApp := roster.NewApp(rosterRepo, teamsApp, mode)
	rosterService := roster.NewService(rosterApp)

	// Sessions
	sessions, err := auth.NewSessions([]byte(config.Auth.Secret), config.Auth.SessionTTL, clock)
	if err != nil {
		return nil, err
	}
	creds := auth.Credentials{
		Username:     config.Auth.Username,
		PasswordHash: config.Auth.PasswordHash,
	}

	return &Services{
		Teams:    teamsService,
		Players:  playerService,
		Roster:   rosterService,
		Export:   export.NewHandler(teamsApp, playerRepo),
		Blobs:    blobstore.NewHandler(blobs),
		Auth:     auth.NewHandler(creds, sessions, config.Auth.SecureCookie),
		Sessions: sessions,
	}, nil
}
