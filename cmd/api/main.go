package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chartbot/crown-engine/internal/adapter"
	"github.com/chartbot/crown-engine/internal/api/middleware"
	"github.com/chartbot/crown-engine/internal/api/rest"
	"github.com/chartbot/crown-engine/internal/api/server"
	"github.com/chartbot/crown-engine/internal/audit"
	"github.com/chartbot/crown-engine/internal/cache"
	"github.com/chartbot/crown-engine/internal/config"
	"github.com/chartbot/crown-engine/internal/engine"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/maintenance"
	"github.com/chartbot/crown-engine/internal/ranking"
	"github.com/chartbot/crown-engine/internal/store"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	envPath := flag.String("env", "config/", "path to the directory containing .env files")
	flag.Parse()

	config.ChdirRepoRoot()

	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"service": "api-server"},
	}); err != nil {
		panic(err)
	}
	defer logger.Flush(2 * time.Second)

	db, err := gorm.Open(pgdriver.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime,
	); err != nil {
		logger.Fatal("failed to configure connection pool", zap.Error(err))
	}

	crownStore, err := store.NewPGStore(db)
	if err != nil {
		logger.Fatal("failed to initialize store", zap.Error(err))
	}

	settingsCache := cache.NewProvider(crownStore, cfg.Cache.Size, cfg.Cache.TTL)

	rankingClient := adapter.NewHTTPClientWithHeaders(
		cfg.Ranking.HTTPTimeout,
		cfg.Ranking.MaxRetryElapsed,
		map[string]string{"X-API-Key": cfg.Ranking.APIKey},
	)
	directoryClient := adapter.NewHTTPClientWithHeaders(
		cfg.Directory.HTTPTimeout,
		cfg.Directory.MaxRetryElapsed,
		map[string]string{"X-API-Key": cfg.Directory.APIKey},
	)
	rankingSource := ranking.NewHTTPRankingSource(rankingClient, cfg.Ranking.BaseURL)
	directory := ranking.NewHTTPMemberDirectory(directoryClient, cfg.Directory.BaseURL)

	eng := engine.New(crownStore, settingsCache, rankingSource, directory, adapter.NewClock())
	maint := maintenance.New(
		crownStore,
		eng,
		rankingSource,
		adapter.NewClock(),
		cfg.Seeder.Worker.PoolSize,
		cfg.Seeder.Worker.QueueSize,
	)
	viewer := audit.NewViewer(crownStore, directory)

	handler := rest.NewHandler(eng, maint, viewer, crownStore, settingsCache)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, handler, middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port))
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error(err, zap.String("component", "api-server"))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "api-server"))
	}

	logger.Info("API server stopped")
}
