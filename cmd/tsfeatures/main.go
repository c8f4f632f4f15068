package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/aevon-lab/tsfeatures/internal/augmentation"
	corecfg "github.com/aevon-lab/tsfeatures/internal/core/config"
	"github.com/aevon-lab/tsfeatures/internal/core/fourier"
	"github.com/aevon-lab/tsfeatures/internal/logger"
	"github.com/aevon-lab/tsfeatures/internal/server"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("tsfeatures failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fl := flag.NewFlagSet("tsfeatures", flag.ContinueOnError)
	configPath := fl.StringP("config", "c", "", "Path to configuration file")
	serve := fl.Bool("serve", false, "Run the HTTP API instead of a one-shot CSV augmentation")
	csvFlags := bindCSVFlags(fl)
	if err := fl.Parse(args); err != nil {
		return err
	}

	// 0. Load .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	log, err := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(log)
	slog.Debug("Loaded config", "config", cfg)

	// 3. Initialize Augmenter
	aug := fourier.NewAugmenter(fourier.WithLogger(log))

	if !*serve {
		return runCSV(fl, csvFlags, cfg, aug)
	}
	return runServer(cfg, aug)
}

func runServer(cfg *corecfg.Config, aug *fourier.Augmenter) error {
	recipes := cfg.RecipeLoading.Repository
	slog.Info("Recipes loaded", "dir", cfg.RecipeLoading.Dir, "count", recipes.Len())

	// 4. Initialize Augmentation API
	svc := augmentation.NewService(aug, recipes, augmentation.Defaults{
		Engine:     cfg.Fourier.DefaultEngine,
		MaxOrder:   cfg.Fourier.DefaultMaxOrder,
		DateLayout: cfg.Fourier.DateLayout,
	}, cfg.Server.MaxBodySizeMB)

	// 5. Initialize Server
	srv := server.New(cfg.Server.Addr(), cfg.Server.Mode, map[string]server.HealthChecker{
		"recipes": recipes,
	})
	svc.RegisterRoutes(srv.Engine)

	// 6. Start
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}
