package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/dbconfig"
	"github.com/mcdev12/bpl/go/internal/migrations"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/mcdev12/bpl/go/internal/player"
	playerdb "github.com/mcdev12/bpl/go/internal/player/db"
	"github.com/mcdev12/bpl/go/internal/teams"
	teamsdb "github.com/mcdev12/bpl/go/internal/teams/db"
)

// Team mirrors the seed JSON
type Team struct {
	Name        string   `json:"name"`
	HomeCity    *string  `json:"home_city"`
	FoundedYear *int     `json:"founded_year"`
	Players     []Player `json:"players"`
}

type Player struct {
	Name           string  `json:"name"`
	City           *string `json:"city"`
	PlayingRole    string  `json:"playing_role"`
	IsCaptain      bool    `json:"is_captain"`
	IsWicketKeeper bool    `json:"is_wicket_keeper"`
	BattingOrder   *int    `json:"batting_order"`
}

func main() {
	path := flag.String("file", "go/internal/assets/teams.json", "seed JSON file")
	flag.Parse()

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var seed []Team
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig and bring the schema up to date
	ctx := context.Background()
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := migrations.Apply(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		os.Exit(1)
	}

	// 3) Insert through the apps so validation and outbox events apply
	teamsApp := teams.NewApp(teams.NewRepository(pool, teamsdb.New(pool)), clockwork.NewRealClock())
	playerApp := player.NewApp(player.NewRepository(pool, playerdb.New(pool)), teamsApp)

	var (
		total    = len(seed)
		inserted int
		skipped  int
		players  int
		errs     int
	)

	for _, t := range seed {
		team, err := teamsApp.CreateTeam(ctx, teams.CreateTeamRequest{
			Name:        t.Name,
			HomeCity:    t.HomeCity,
			FoundedYear: t.FoundedYear,
		})
		if apperr.IsConflict(err) {
			skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting team %s: %v\n", t.Name, err)
			errs++
			continue
		}
		inserted++

		if len(t.Players) == 0 {
			continue
		}
		reqs := make([]player.CreatePlayerRequest, 0, len(t.Players))
		for _, p := range t.Players {
			reqs = append(reqs, player.CreatePlayerRequest{
				TeamID:         team.ID,
				Name:           p.Name,
				City:           p.City,
				IsCaptain:      p.IsCaptain,
				IsWicketKeeper: p.IsWicketKeeper,
				PlayingRole:    models.PlayingRole(p.PlayingRole),
				BattingOrder:   p.BattingOrder,
			})
		}
		created, err := playerApp.CreatePlayers(ctx, reqs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting players for %s: %v\n", t.Name, err)
			errs++
			continue
		}
		players += len(created)
	}

	// 4) Print summary
	fmt.Printf(
		"Teams seed complete: %d total, %d inserted, %d skipped, %d players, %d errors\n",
		total, inserted, skipped, players, errs,
	)
}
