package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/stocksync/internal/client/api"
	"github.com/iudanet/stocksync/internal/client/cli"
	"github.com/iudanet/stocksync/internal/client/inventory"
	"github.com/iudanet/stocksync/internal/client/netmon"
	"github.com/iudanet/stocksync/internal/client/storage/boltdb"
	syncsvc "github.com/iudanet/stocksync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "stocksync-client.db", "Path to local database")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx := context.Background()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем сервисы
	apiClient := api.NewClient(*serverURL)
	inventoryService := inventory.NewService(boltStorage, boltStorage)
	syncService := syncsvc.NewService(apiClient, boltStorage, syncsvc.ServerWins{}, logger)

	// Выполняем команду
	if err := runCommand(ctx, command, args[1:], commandDeps{
		apiClient:   apiClient,
		boltStorage: boltStorage,
		inventory:   inventoryService,
		sync:        syncService,
		logger:      logger,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type commandDeps struct {
	apiClient   *api.Client
	boltStorage *boltdb.Storage
	inventory   inventory.Service
	sync        syncsvc.Service
	logger      *slog.Logger
}

func runCommand(ctx context.Context, command string, args []string, deps commandDeps) error {
	switch command {
	case "register":
		return cli.RunRegister(ctx, args, deps.apiClient, deps.boltStorage)
	case "add":
		return cli.RunAdd(ctx, args, deps.inventory)
	case "update":
		return cli.RunUpdate(ctx, args, deps.inventory)
	case "adjust":
		return cli.RunAdjust(ctx, args, deps.inventory)
	case "delete":
		return cli.RunDelete(ctx, args, deps.inventory)
	case "get":
		return cli.RunGet(ctx, args, deps.inventory)
	case "list":
		return cli.RunList(ctx, args, deps.inventory)
	case "sync":
		return cli.RunSync(ctx, deps.sync)
	case "pull":
		return cli.RunPull(ctx, deps.sync)
	case "status":
		return cli.RunStatus(ctx, deps.apiClient, deps.boltStorage)
	case "conflicts":
		return cli.RunConflicts(ctx, deps.boltStorage)
	case "watch":
		monitor := netmon.New(deps.apiClient, func(ctx context.Context) error {
			_, err := deps.sync.Sync(ctx)
			return err
		}, deps.logger)
		return cli.RunWatch(ctx, monitor)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printVersion() {
	fmt.Printf("StockSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
