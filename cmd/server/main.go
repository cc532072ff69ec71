package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/stocksync/internal/server/handlers"
	"github.com/iudanet/stocksync/internal/server/middleware"
	"github.com/iudanet/stocksync/internal/server/reconcile"
	"github.com/iudanet/stocksync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "stocksync-server.db", "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (required, or STOCKSYNC_JWT_SECRET)")
	tokenTTL := flag.Duration("token-ttl", 720*time.Hour, "Device access token TTL")
	rateLimit := flag.Int("rate-limit", 300, "Requests per minute per IP")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(logger, *addr, *dbPath, *jwtSecret, *tokenTTL, *rateLimit); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, jwtSecret string, tokenTTL time.Duration, rateLimit int) error {
	if jwtSecret == "" {
		jwtSecret = os.Getenv("STOCKSYNC_JWT_SECRET")
	}
	if jwtSecret == "" {
		return fmt.Errorf("jwt secret is required: pass --jwt-secret or set STOCKSYNC_JWT_SECRET")
	}

	ctx := context.Background()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(jwtSecret),
		AccessTokenTTL: tokenTTL,
	}

	reconciler := reconcile.NewService(store, store, logger)

	deviceHandler := handlers.NewDeviceHandler(logger, jwtConfig)
	syncHandler := handlers.NewSyncHandler(logger, reconciler, store)
	adminHandler := handlers.NewAdminHandler(logger, store, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	auth := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/devices/register", deviceHandler.Register)
	mux.HandleFunc("GET /api/v1/sync/status", syncHandler.HandleStatus)
	mux.Handle("POST /api/v1/sync/push", auth(http.HandlerFunc(syncHandler.HandlePush)))
	mux.Handle("GET /api/v1/sync/pull", auth(http.HandlerFunc(syncHandler.HandlePull)))
	mux.Handle("POST /api/v1/admin/deduplicate", auth(http.HandlerFunc(adminHandler.Deduplicate)))
	mux.Handle("POST /api/v1/admin/cleanup", auth(http.HandlerFunc(adminHandler.Cleanup)))

	// Middleware chain: recovery -> rate limit -> logging -> mux
	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health", "/api/v1/sync/status"})(handler)
	handler = middleware.RateLimitMiddleware(rateLimit, time.Minute, logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errC:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stopC:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")

	return nil
}

func printVersion() {
	fmt.Printf("StockSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
