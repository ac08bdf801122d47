package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"bookings/config"
	"bookings/db"
	"bookings/db/ledger"
	"bookings/gateway"
	"bookings/http"
	"bookings/service"
	"bookings/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	traceProvider := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		_ = traceProvider.Shutdown(context.Background())
	}()

	dbConn, err := sqlx.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}
	defer dbConn.Close()

	redisClient := db.NewRedisClient(cfg.RedisAddr)
	defer redisClient.Close()

	emailClient := gateway.NewEmailClient(cfg.EmailAPIURL, cfg.EmailAPIKey)
	sheetsClient := gateway.NewSheetsClient(
		cfg.SheetsAPIURL,
		cfg.SheetsAPIKey,
		ledger.NewPostgresRepository(dbConn),
	)

	svc := service.New(
		cfg.HTTPAddr,
		dbConn,
		redisClient,
		emailClient,
		sheetsClient,
		http.AdminCredentials{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
		},
		cfg.SessionTTL,
	)

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("service stopped")
	}
}
