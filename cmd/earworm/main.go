package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/earworm-lab/earworm/internal/core/config"
	"github.com/earworm-lab/earworm/internal/core/storage/postgres"
	"github.com/earworm-lab/earworm/internal/ingestion"
	"github.com/earworm-lab/earworm/internal/loader"
	"github.com/earworm-lab/earworm/internal/migrations"
	"github.com/earworm-lab/earworm/internal/projection"
	"github.com/earworm-lab/earworm/internal/server"
)

func main() {
	configPath := flag.String("config", "earworm.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"addr", fmtAddr(cfg.Server.Host, cfg.Server.Port),
		"dataset_dir", cfg.Dataset.Dir,
		"shards", len(cfg.Dataset.Shards),
		"timezone", cfg.Stats.Location().String(),
	)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Loader (stored upload wins over bundled shards)
	loaderSvc := loader.NewService(dbAdapter, cfg.Dataset.Dir, cfg.Dataset.Shards)

	// 4. Initialize Ingestion (upload / clear / status)
	ingestionSvc := ingestion.NewService(
		dbAdapter,
		loaderSvc,
		cfg.Dataset.FilenameMarker,
		cfg.Server.MaxUploadSizeMB,
	)

	// 5. Initialize Projection (stats query API)
	projectionSvc := projection.NewService(
		loaderSvc,
		cfg.Stats.Location(),
		cfg.Stats.DefaultLimit,
	)

	// 6. Initialize Server
	srv := server.New(
		fmtAddr(cfg.Server.Host, cfg.Server.Port),
		dbAdapter.DB(),
		cfg.Server.Mode,
		cfg.Access.Key,
	)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
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
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
