package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bloodlink/donor-registry/internal/api"
	"github.com/bloodlink/donor-registry/internal/api/metrics"
	"github.com/bloodlink/donor-registry/internal/core/ports"
	"github.com/bloodlink/donor-registry/internal/infrastructure/config"
	mongostore "github.com/bloodlink/donor-registry/internal/infrastructure/db/mongo"
	redisstore "github.com/bloodlink/donor-registry/internal/infrastructure/db/redis"
	"github.com/bloodlink/donor-registry/internal/infrastructure/identity"
	"github.com/bloodlink/donor-registry/internal/infrastructure/mail"
	"github.com/bloodlink/donor-registry/internal/infrastructure/queue"
	"github.com/bloodlink/donor-registry/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "donor-registry",
	})

	// --- Document store ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index provisioning failed")
	}

	// --- Redis (reset throttle); optional, the service degrades without it ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, password-reset throttling disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// --- Identity provider ---
	provider, err := identity.New(ctx, cfg.Firebase.ProjectID, []byte(cfg.Firebase.CredentialsJSON), cfg.Firebase.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("identity provider init failed")
	}

	// --- Outbound mail and alert fan-out ---
	mailer := mail.NewSendGridMailer(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	dispatcher := queue.NewDispatcher(cfg.Alerts.Workers, countingSender{mailer}, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, provider, mailer, dispatcher, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("donor registry listening")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// countingSender wraps the mailer with the delivery-outcome metric.
type countingSender struct {
	mailer ports.Mailer
}

func (s countingSender) SendDonorAlert(ctx context.Context, alert ports.DonorAlert) error {
	err := s.mailer.SendDonorAlert(ctx, alert)
	if err != nil {
		metrics.AlertsDeliveredTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.AlertsDeliveredTotal.WithLabelValues("ok").Inc()
	return nil
}
