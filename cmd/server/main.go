package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "gamehub/backend/docs" // registers the generated swagger docs

	"gamehub/backend/internal/account"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/config"
	"gamehub/backend/internal/database"
	"gamehub/backend/internal/handler"
	"gamehub/backend/internal/logging"
	"gamehub/backend/internal/router"
	"gamehub/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title           GameHub API
// @version         1.0
// @description     Catalog, accounts and favorites for the GameHub game hosting site.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	uploads := storage.NewLocal(cfg.UploadDir, "/uploads", cfg.MaxUploadBytes)
	h := handler.New(catalog.New(db), account.New(db, cfg.JWTSecret), uploads)

	engine := router.New(h, router.Options{
		JWTSecret:      cfg.JWTSecret,
		UploadDir:      cfg.UploadDir,
		CORSOrigins:    cfg.AllowedOrigins(),
		AuthRatePerSec: cfg.AuthRatePerSec,
		AuthRateBurst:  cfg.AuthRateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Server is running, Swagger UI at /swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
