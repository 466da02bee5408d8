// Package main is the entry point for the Plume API server. It loads
// configuration, connects to services, sets up routing and the job
// scheduler, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plume/internal/cache"
	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/handlers"
	"plume/internal/ledger"
	"plume/internal/middleware"
	"plume/internal/notify"
	"plume/internal/paypal"
	"plume/internal/router"
	"plume/internal/scheduler"
	"plume/internal/store"
	"plume/internal/taxonomy"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	postStore := store.NewPostStore(db)
	walletStore := store.NewWalletStore(db)
	withdrawalStore := store.NewWithdrawalStore(db)
	earningStore := store.NewEarningStore(db)

	// The assembled category tree is cached in Valkey between mutations.
	treeCache := cache.NewTreeCache(valkeyClient, cache.DefaultTreeTTL)

	// Event sink for taxonomy and ledger notifications.
	sink := notify.NewLogSink()

	// Category tree manager.
	taxonomyManager := taxonomy.NewManager(categoryStore, treeCache, sink)

	// PayPal Payouts gateway for withdrawals.
	gateway := paypal.New(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret)
	if cfg.PayPalClientID == "" {
		slog.Warn("paypal credentials not configured — payouts will fail until set")
	}

	// Earnings and withdrawal ledger.
	ledgerService := ledger.NewService(
		walletStore, withdrawalStore, earningStore, postStore,
		gateway, sink,
		cfg.EarningRate, cfg.MinWithdrawal,
	)

	// Recurring jobs: nightly earnings aggregation, half-hourly payout
	// reconciliation.
	sched, err := scheduler.New(ledgerService)
	if err != nil {
		slog.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}
	if cfg.EnableScheduler {
		sched.Start()
		defer sched.Stop()
	} else {
		slog.Warn("scheduler disabled — earnings and reconciliation run only on demand")
	}

	// Create handler groups with their dependencies.
	categoryHandlers := handlers.NewCategories(taxonomyManager)
	postHandlers := handlers.NewPosts(postStore, taxonomyManager)
	walletHandlers := handlers.NewWallets(ledgerService)
	earningHandlers := handlers.NewEarnings(ledgerService)

	// Per-IP rate limiting across the whole API.
	limiter := middleware.NewRateLimiter(300, time.Minute)
	defer limiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(cfg.AdminKey, limiter, categoryHandlers, postHandlers, walletHandlers, earningHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate the synchronous PayPal round-trip on withdrawal requests.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
