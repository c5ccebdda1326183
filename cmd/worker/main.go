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
	"github.com/chartbot/crown-engine/internal/cache"
	"github.com/chartbot/crown-engine/internal/config"
	"github.com/chartbot/crown-engine/internal/engine"
	"github.com/chartbot/crown-engine/internal/logger"
	"github.com/chartbot/crown-engine/internal/ranking"
	"github.com/chartbot/crown-engine/internal/store"
	"github.com/chartbot/crown-engine/internal/worker"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	envPath := flag.String("env", "config/", "path to the directory containing .env files")
	flag.Parse()

	config.ChdirRepoRoot()

	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"service": "evaluation-worker"},
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

	w, err := worker.NewWorker(worker.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		ConsumerName:   cfg.NATS.ConsumerName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		AckWaitTimeout: cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
		PoolSize:       cfg.Worker.PoolSize,
		QueueSize:      cfg.Worker.QueueSize,
	}, adapter.NewNatsJetStream(), eng, adapter.NewJSON())
	if err != nil {
		logger.Fatal("failed to create worker", zap.Error(err))
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting evaluation worker",
			zap.String("stream", cfg.NATS.StreamName),
			zap.String("consumer", cfg.NATS.ConsumerName))
		errCh <- w.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Error(err, zap.String("component", "evaluation-worker"))
		}
	}

	logger.Info("evaluation worker stopped")
}
