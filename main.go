package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homebudget/backend/internal/auth"
	"github.com/homebudget/backend/internal/config"
	v1 "github.com/homebudget/backend/internal/controllers/v1"
	"github.com/homebudget/backend/internal/models"
	"github.com/homebudget/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//	@title						Home Budget
//	@description				The backend for Home Budget. Create budgets, share them with your household and keep track of income and expenses.
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	cfg, err := config.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(gin.ReleaseMode)
	if err == nil {
		gin.SetMode(cfg.GinMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Configuration errors are only reported once the logger is set up
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	db, err := connect(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	controller := v1.Controller{
		DB:               db,
		Tokens:           auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		PageSize:         cfg.PageSize,
		DefaultAvatarURL: cfg.DefaultAvatarURL,
	}
	router.AttachRoutes(controller, r.Group(cfg.APIURL.Path), cfg.EnablePprof)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("backend startup complete")

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Msgf("Server shutdown failed: %s", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("Server exited")
}

// connect opens the configured database. The directory of the SQLite
// database is created if it does not exist.
func connect(cfg config.Config) (*gorm.DB, error) {
	if cfg.UsePostgres() {
		return models.ConnectPostgres(cfg.PostgresDSN())
	}

	err := os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
	if err != nil {
		return nil, err
	}

	return models.Connect(cfg.DBPath)
}
