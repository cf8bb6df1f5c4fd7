// Command server runs the roster API: connect services, workbook export,
// image uploads, login and live roster updates.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/bpl/go/internal/blobstore"
	"github.com/mcdev12/bpl/go/internal/live"
	"github.com/mcdev12/bpl/go/internal/outbox"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := setupDatabase(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("setup database")
	}
	defer pool.Close()

	blobs, err := openBlobStore(config.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("open blob store")
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Error().Err(err).Msg("close blob store")
		}
	}()

	services, err := setupServices(pool, config, blobs, clockwork.NewRealClock())
	if err != nil {
		log.Fatal().Err(err).Msg("setup services")
	}

	hub, consumer := setupLive(ctx, config)
	if consumer != nil {
		defer consumer.Close()
	}

	server := setupServer(config, services, pool, hub)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server exited unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("graceful shutdown complete")
}

func openBlobStore(dir string) (*blobstore.Store, error) {
	if dir == "" {
		log.Warn().Msg("uploads.dir not set, keeping uploads in memory")
		return blobstore.OpenInMemory()
	}
	return blobstore.Open(dir)
}

// setupLive starts the websocket hub and its NATS consumer. Both are nil when
// NATS is not configured or unreachable; the API runs without live updates.
func setupLive(ctx context.Context, config *Config) (*live.Hub, *live.EventConsumer) {
	if config.NATS.URL == "" {
		log.Info().Msg("nats.url not set, live updates disabled")
		return nil, nil
	}

	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = config.NATS.URL

	hub := live.NewHub(live.DefaultConfig())
	consumer, err := live.NewEventConsumer(ctx, jsCfg, hub)
	if err != nil {
		log.Error().Err(err).Msg("live updates disabled")
		return nil, nil
	}

	go hub.Start(ctx)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
		}
	}()
	return hub, consumer
}
