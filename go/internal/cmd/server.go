package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/bpl/go/internal/api/player/v1/playerv1connect"
	"github.com/mcdev12/bpl/go/internal/api/roster/v1/rosterv1connect"
	"github.com/mcdev12/bpl/go/internal/api/team/v1/teamv1connect"
	"github.com/mcdev12/bpl/go/internal/auth"
	"github.com/mcdev12/bpl/go/internal/httpx"
	"github.com/mcdev12/bpl/go/internal/live"
	"github.com/mcdev12/bpl/go/internal/rpc"
)

func setupServer(config *Config, services *Services, pool *pgxpool.Pool, hub *live.Hub) *http.Server {
	mux := http.NewServeMux()

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins:   config.Server.AllowedOrigins,
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", rpc.ErrorKindHeader},
		AllowCredentials: true,
	})

	registerServices(mux, services)
	services.Export.Register(mux)
	services.Blobs.Register(mux)
	services.Auth.Register(mux)
	if hub != nil {
		live.NewHandler(hub).Register(mux)
	}
	setupHealthCheck(mux, pool)

	handler := c.Handler(auth.Middleware(services.Sessions, auth.DefaultPublicPaths)(mux))

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	opts := rpc.HandlerOptions()

	teamServicePath, teamServiceHandler := teamv1connect.NewTeamServiceHandler(services.Teams, opts...)
	mux.Handle(teamServicePath, teamServiceHandler)

	playerServicePath, playerServiceHandler := playerv1connect.NewPlayerServiceHandler(services.Players, opts...)
	mux.Handle(playerServicePath, playerServiceHandler)

	rosterServicePath, rosterServiceHandler := rosterv1connect.NewRosterServiceHandler(services.Roster, opts...)
	mux.Handle(rosterServicePath, rosterServiceHandler)
}

func setupHealthCheck(mux *http.ServeMux, pool *pgxpool.Pool) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			httpx.WriteStatus(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
