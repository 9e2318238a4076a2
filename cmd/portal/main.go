// The portal server hosts the studio dashboards' API: login, the admin,
// staff and client views, the public booking endpoint and the WhatsApp
// notification webhook. All entity data lives behind the studio backend;
// this process keeps only per-session view state.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelier-lumiere/studio-portal/internal/api"
	"github.com/atelier-lumiere/studio-portal/internal/core/service"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/backend"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/config"
	redisdb "github.com/atelier-lumiere/studio-portal/internal/infrastructure/db/redis"
	"github.com/atelier-lumiere/studio-portal/internal/infrastructure/notify"
	"github.com/atelier-lumiere/studio-portal/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadPortal(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// Redis only backs notification dedup; the portal runs without it.
	var dedup service.NotifyDedup
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, notification dedup disabled")
	} else {
		defer rdb.Close()
		dedup = redisdb.NewNotifyDedup(rdb)
	}

	facade := backend.New(cfg.Backend.BaseURL, cfg.Backend.ServiceToken)
	notifier := notify.NewTwilioWhatsApp(
		cfg.Twilio.AccountSID,
		cfg.Twilio.AuthToken,
		cfg.Twilio.WhatsAppFrom,
		cfg.Twilio.AdminTo,
	)
	notifySvc := service.NewNotifyService(notifier, dedup, log)

	e := api.NewRouter(api.RouterDeps{
		Facade:    facade,
		NotifySvc: notifySvc,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  tokenTTL,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("portal server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("portal server failed")
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
