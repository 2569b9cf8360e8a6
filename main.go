package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gateway/internal/config"
	intdb "gateway/internal/db"
	router "gateway/internal/http"
	"gateway/internal/http/middleware"
	"gateway/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const (
	dbConnectAttempts = 5
	dbRetryDelay      = 2 * time.Second
)

func main() {
	configDir := pflag.String("config", ".", "directory holding config.yaml")
	pflag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	utils.SetupLogger(cfg.LogLevel, cfg.LogPretty)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := connectWithRetry(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDB()

	if cfg.DB.Migrate {
		if err := intdb.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	limiter.StartCleanup(10*time.Minute, ctx.Done())

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router.NewRouter(cfg, db, limiter),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		return
	}
	log.Info().Msg("server stopped")
}

// connectWithRetry covers the database container still starting up.
func connectWithRetry(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err := config.ConnectDB(cfg)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("database not ready")
		if attempt == dbConnectAttempts {
			break
		}
		if err := utils.Delay(ctx, dbRetryDelay*time.Duration(attempt)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}
