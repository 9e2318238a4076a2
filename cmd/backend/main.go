// The backend server is the persistence tier of the studio portal: a REST
// API over MongoDB implementing the contract the portal's facade client
// consumes.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/config"
	mongodb "github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/redis"
	httpserver "github.com/atelier-lumiere/studio-portal/internal/infrastructure/http"
	"github.com/atelier-lumiere/studio-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBackend(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	ensureIndexes(ctx, db, log)

	// Redis is only consulted by the readiness probe here.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	e := httpserver.NewRouter(db, rdb, cfg.ServiceToken, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("database", cfg.Mongo.Database).Msg("backend server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("backend server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

// ensureIndexes creates all collection indexes at startup. Failures are
// logged but not fatal; the server still works, just slower.
func ensureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) {
	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	repos := map[string]indexer{
		"users":        mongodb.NewUserRepository(db),
		"appointments": mongodb.NewAppointmentRepository(db),
		"albums":       mongodb.NewAlbumRepository(db),
		"gallery":      mongodb.NewGalleryRepository(db),
		"documents":    mongodb.NewDocumentRepository(db),
	}
	for name, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}
}
