package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"frota/internal/amqp"
	"frota/internal/archive"
	"frota/internal/config"
	"frota/internal/export"
	"frota/internal/log"
	"frota/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting frota-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := archive.NewRepository(cfg.ArchiveDBPath)
	if err != nil {
		logger.Error("Failed to initialize archive repository", log.FieldError, err, "path", cfg.ArchiveDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// Sheets mirroring is optional; the SQLite archive alone is enough.
	var exporter worker.ExpenseExporter
	if cfg.SheetsExportEnabled() {
		sheets, err := export.NewSheetsExporter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsSheetName)
		if err != nil {
			logger.Error("Failed to initialize Sheets exporter", log.FieldError, err)
			os.Exit(1)
		}
		exporter = sheets
		logger.Info("Sheets export enabled", "spreadsheet_id", cfg.SheetsSpreadsheetID, "sheet", cfg.SheetsSheetName)
	} else {
		logger.Info("Sheets export disabled - no SHEETS_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	archiveWorker := worker.NewArchiveWorker(repo, exporter, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeExpenseRecorded(gctx, archiveWorker.HandleExpenseRecorded)
	})

	logger.Info("Worker started", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
