package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homeledger/homeledger-backend/internal/adapter/cache"
	"github.com/homeledger/homeledger-backend/internal/adapter/httpapi"
	"github.com/homeledger/homeledger-backend/internal/adapter/repository/postgres"
	"github.com/homeledger/homeledger-backend/internal/config"
	"github.com/homeledger/homeledger-backend/internal/log"
	"github.com/homeledger/homeledger-backend/internal/usecase/ledger"
)

func main() {
	logger := log.New("server", log.ParseLevel(os.Getenv("LOG_LEVEL")))

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger = log.New("server", log.ParseLevel(cfg.LogLevel))

	// 2. Setup database and run migrations
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	periodRepo := postgres.NewPeriodRepository(db)
	accountRepo := postgres.NewAccountRepository(db)

	// 4. Initialize the aggregate cache
	reportCache, err := cache.New()
	if err != nil {
		logger.Error("failed to initialize report cache", "error", err)
		os.Exit(1)
	}

	// 5. Start HTTP server
	apiServer := httpapi.NewServer(
		userRepo,
		transactionRepo,
		budgetRepo,
		periodRepo,
		accountRepo,
		reportCache,
		ledger.UUIDGenerator{},
		logger.WithComponent("httpapi"),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpapi.NewRouter(apiServer, cfg.JWTSecret),
	}

	go func() {
		logger.Info("HTTP server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	waitForShutdown(srv, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server, logger *log.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		return
	}
	logger.Info("HTTP server stopped")
}
