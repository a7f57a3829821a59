// Command seed wipes the configured database and fills it with demo data.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gamehub/backend/internal/account"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/config"
	"gamehub/backend/internal/database"
	"gamehub/backend/internal/logging"
	"gamehub/backend/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	_, err = seed.Run(ctx, db, account.New(db, cfg.JWTSecret), catalog.New(db))
	stop()
	if closeErr := database.Close(db); closeErr != nil {
		logging.Error().Err(closeErr).Msg("Failed to close database")
	}
	if err != nil {
		logging.Error().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}
}
