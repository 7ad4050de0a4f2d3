// Bucketboard server entry point.
//
// Startup order:
//  1. Load configuration from environment (.env supported)
//  2. Initialize structured logging
//  3. Open and migrate the three databases (portfolio, config, cache)
//  4. Wire repositories and services
//  5. Register the background refresh job
//  6. Start the HTTP server and wait for a shutdown signal
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/bucketboard/internal/config"
	"github.com/aristath/bucketboard/internal/database"
	"github.com/aristath/bucketboard/internal/modules/dashboard"
	dashboardhandlers "github.com/aristath/bucketboard/internal/modules/dashboard/handlers"
	"github.com/aristath/bucketboard/internal/modules/positions"
	positionhandlers "github.com/aristath/bucketboard/internal/modules/positions/handlers"
	"github.com/aristath/bucketboard/internal/modules/settings"
	settingshandlers "github.com/aristath/bucketboard/internal/modules/settings/handlers"
	"github.com/aristath/bucketboard/internal/modules/snapshots"
	"github.com/aristath/bucketboard/internal/modules/spreads"
	spreadhandlers "github.com/aristath/bucketboard/internal/modules/spreads/handlers"
	"github.com/aristath/bucketboard/internal/quotes"
	"github.com/aristath/bucketboard/internal/scheduler"
	"github.com/aristath/bucketboard/internal/server"
	"github.com/aristath/bucketboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Bucketboard")

	// Databases
	portfolioDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "portfolio.db"),
		Name:    "portfolio",
		Profile: database.ProfileStandard,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open portfolio database")
	}
	defer portfolioDB.Close()

	configDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "config.db"),
		Name:    "config",
		Profile: database.ProfileStandard,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open config database")
	}
	defer configDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Name:    "cache",
		Profile: database.ProfileCache,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	for _, db := range []*database.DB{portfolioDB, configDB, cacheDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Failed to run migrations")
		}
	}

	// Repositories
	positionRepo := positions.NewRepository(portfolioDB.Conn(), log)
	spreadRepo := spreads.NewRepository(portfolioDB.Conn(), log)
	settingsRepo := settings.NewRepository(configDB.Conn(), log)
	quoteCache := quotes.NewCacheRepository(cacheDB.Conn())
	snapshotRepo := snapshots.NewRepository(cacheDB.Conn(), log)

	// Services
	settingsSvc := settings.NewService(settingsRepo, log)
	if err := settingsSvc.EnsureDefaults(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default settings")
	}

	quoteClient := quotes.NewClient(cfg.QuoteAPIURL, log)
	quoteSvc := quotes.NewService(quoteClient, quoteCache, log)

	valuator := positions.NewValuator(log)
	ledger := spreads.NewLedger(log)

	dashboardSvc := dashboard.NewService(
		positionRepo,
		spreadRepo,
		settingsSvc,
		valuator,
		ledger,
		quoteSvc,
		snapshotRepo,
		log,
	)

	// Handlers
	dashboardHandler := dashboardhandlers.NewHandler(dashboardSvc, snapshotRepo, log)
	positionHandler := positionhandlers.NewHandler(positionRepo, log)
	spreadHandler := spreadhandlers.NewHandler(spreadRepo, log)
	settingsHandler := settingshandlers.NewHandler(settingsSvc, log)

	srv := server.New(server.Config{
		Log:              log,
		Config:           cfg,
		PortfolioDB:      portfolioDB,
		ConfigDB:         configDB,
		CacheDB:          cacheDB,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		DashboardHandler: dashboardHandler,
		PositionHandler:  positionHandler,
		SpreadHandler:    spreadHandler,
		SettingsHandler:  settingsHandler,
	})

	// Background refresh job: cadence comes from settings, read at startup
	sched := scheduler.New(log)
	refreshJob := scheduler.NewRefreshJob(dashboardSvc, log)

	refreshMinutes := settings.DefaultValues().RefreshMinutes
	if v, err := settingsSvc.Load(); err == nil {
		refreshMinutes = v.RefreshMinutes
	}
	if refreshMinutes > 0 {
		schedule := fmt.Sprintf("@every %dm", refreshMinutes)
		if err := sched.AddJob(schedule, refreshJob); err != nil {
			log.Error().Err(err).Msg("Failed to register refresh job")
		}
	}

	sched.Start()
	defer sched.Stop()

	// Warm the snapshot so the first /dashboard/snapshot read has data
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial dashboard refresh failed")
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Bucketboard stopped")
}
