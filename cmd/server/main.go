package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/packdex/internal/api"
	"github.com/vytor/packdex/internal/catalog"
	"github.com/vytor/packdex/internal/config"
	"github.com/vytor/packdex/internal/db"
	"github.com/vytor/packdex/internal/logger"
	"github.com/vytor/packdex/internal/remote"
	"github.com/vytor/packdex/internal/repository/sqlite"
	"github.com/vytor/packdex/internal/services"
	"github.com/vytor/packdex/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Packdex Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("data_base_url=%s", cfg.DataBaseURL)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("identity_login_enabled=%t", cfg.IdentitySecret != "")
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("pack_cost=%d pack_size=%d", cfg.PackCost, cfg.PackSize)
	log.Debug("sync_worker_count=%d sync_queue_size=%d", cfg.SyncWorkerCount, cfg.SyncQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Card pools and question banks come from local files by default, or
	// from an HTTP origin when DATA_BASE_URL is set.
	var src catalog.Source
	if cfg.DataBaseURL != "" {
		src = catalog.NewHTTPSource(cfg.DataBaseURL)
	} else {
		src = catalog.FileSource{Dir: cfg.DataDir}
	}
	cat := catalog.New(src)

	// The remote store is optional; without it the game is local-only.
	var remoteStore remote.StoreInterface
	if cfg.RedisAddr != "" {
		store, err := remote.NewStore(remote.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Error("failed to connect to remote store: %v", err)
			os.Exit(1)
		}
		defer store.Close()
		remoteStore = store
		log.Info("remote store connected at %s", cfg.RedisAddr)
	} else {
		log.Info("no remote store configured, running local-only")
	}

	// Repositories
	profiles := sqlite.NewProfileRepository(database.DB)
	inventory := sqlite.NewInventoryRepository(database.DB)
	listings := sqlite.NewListingRepository(database.DB)
	trades := sqlite.NewTradeRepository(database.DB)
	boards := sqlite.NewLeaderboardRepository(database.DB)

	// Sync pipeline
	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	publisher := services.NewPublisher(syncPool, remoteStore, boards)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	quizRng := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	// Services
	profileService := services.NewProfileService(profiles, inventory, publisher, cfg.StartingCoins, cfg.IdentitySecret)
	packService := services.NewPackService(profiles, inventory, cat, publisher, cfg.PackCost, cfg.PackSize, rng)
	quizService := services.NewQuizService(profiles, inventory, cat, publisher, cfg.CoinsPerPoint, cfg.AnswerLockout, quizRng)
	marketService := services.NewMarketService(profiles, inventory, listings, trades, remoteStore, publisher, cfg.SellerCredit)
	leaderboardService := services.NewLeaderboardService(profiles, inventory, boards, remoteStore, cfg.LeaderboardLimit)
	dexService := services.NewDexService(cat, inventory)

	srv := &api.Server{
		ProfileService:     profileService,
		PackService:        packService,
		QuizService:        quizService,
		MarketService:      marketService,
		LeaderboardService: leaderboardService,
		DexService:         dexService,
		Ping:               database.PingContext,
		StaticDir:          cfg.StaticDir,
	}

	ctx, cancel := context.WithCancel(context.Background())
	syncPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping sync pool")
	cancel()
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("Packdex Server Stopped")
	log.Info("===========================================")
}
