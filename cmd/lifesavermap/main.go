package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kcg-rescue/lifesavermap/internal/blob"
	"github.com/kcg-rescue/lifesavermap/internal/config"
	"github.com/kcg-rescue/lifesavermap/internal/metrics"
	"github.com/kcg-rescue/lifesavermap/internal/server"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("build blob store")
	}

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, store)
	logger.Info().
		Str("port", cfg.Server.Port).
		Str("backend", cfg.Storage.Backend).
		Msg("starting lifesavermap")
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// newStore builds the configured blob backend. The file backend is purely
// local; the s3 backend gets its bucket ensured up front so a misconfigured
// deployment fails at startup, not on the first citizen submission.
func newStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case "s3":
		store, err := blob.NewS3Store(blob.S3Config{
			Endpoint:  cfg.Storage.S3Endpoint,
			Region:    cfg.Storage.S3Region,
			Bucket:    cfg.Storage.S3Bucket,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return blob.NewFileStore(cfg.Storage.DataDir), nil
	}
}
