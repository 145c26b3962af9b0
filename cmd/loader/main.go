package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/halebuild/takeoff-engine/internal/config"
	"github.com/halebuild/takeoff-engine/internal/database"
	"github.com/halebuild/takeoff-engine/internal/importer"
	"github.com/halebuild/takeoff-engine/internal/jobs"
	"github.com/halebuild/takeoff-engine/internal/logger"
	"github.com/halebuild/takeoff-engine/internal/storage"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dir     = flag.String("dir", "", "override the source directory for spreadsheet files")
		file    = flag.String("file", "", "import a single file by name instead of the whole directory")
		migrate = flag.Bool("migrate", false, "run schema auto-migration before importing")
		watch   = flag.Bool("watch", false, "keep running and import on the configured schedule")
	)
	flag.Parse()

	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting takeoff import engine",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
	)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if *dir != "" {
		cfg.Storage.Mode = "local"
		cfg.Storage.LocalBasePath = *dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Info("Schema migration complete")
	}

	// Initialize the spreadsheet source
	source, err := storage.NewSource(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	imp := importer.New(db, source, cfg.Import, log)

	if *file != "" {
		result, err := imp.ImportFile(ctx, *file)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", *file, err)
		}
		log.Info("Import finished",
			zap.Int("rows_processed", result.RowsProcessed),
			zap.Int("rows_failed", result.RowsFailed),
		)
		return nil
	}

	if !*watch {
		summary, err := imp.ImportDirectory(ctx)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		if summary.FilesFailed > 0 {
			return fmt.Errorf("%d file(s) failed to import", summary.FilesFailed)
		}
		return nil
	}

	// Watch mode: run on the configured cron schedule until interrupted
	if cfg.Import.Schedule == "" {
		return fmt.Errorf("watch mode requires import.schedule to be set")
	}

	scheduler := jobs.NewScheduler(log)
	job := jobs.NewImportJob(importRunner{imp}, log, jobs.DefaultImportTimeout)
	if err := scheduler.AddJob(jobs.ImportJobName, cfg.Import.Schedule, job.Run); err != nil {
		return err
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	<-scheduler.Stop().Done()
	return nil
}

// importRunner adapts the importer to the scheduler's job interface
type importRunner struct {
	imp *importer.Importer
}

func (r importRunner) ImportDirectory(ctx context.Context) (int, int, error) {
	summary, err := r.imp.ImportDirectory(ctx)
	if err != nil {
		return 0, 0, err
	}
	return summary.RowsProcessed, summary.RowsFailed, nil
}
