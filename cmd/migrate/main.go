package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/bizrecipe-api/internal/app/api"
	"github.com/Apurer/bizrecipe-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/bizrecipe-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	db, cleanup := platformpostgres.ConnectOptional(ctx, cfg.Postgres.ConnOptions(logger))
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot apply migrations")
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	logger.Info("migrations applied")
}
