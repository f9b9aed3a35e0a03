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

	"finboard/internal/config"
	"finboard/internal/export"
	"finboard/internal/notify"
	"finboard/internal/services"
	"finboard/internal/storage"
	"finboard/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting finboard-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exporter worker.ExpenseExporter
	if cfg.SheetsEnabled() {
		sheet, err := export.NewSheetExporter(ctx, cfg.GoogleCredentialsJSON, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = sheet
		logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets export disabled - missing configuration")
	}

	var amqpClient *notify.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("Notification consumption disabled - no AMQP_URL provided")
	}

	w := worker.New(store, exporter, services.NewExpenseService(store), cfg.ExportBatchSize)

	g, ctx := errgroup.WithContext(ctx)
	if amqpClient != nil {
		g.Go(func() error {
			return amqpClient.Consume(ctx, func(event *notify.Event) error {
				return w.HandleEvent(ctx, event)
			})
		})
	}
	if exporter != nil {
		g.Go(func() error {
			return w.RunExportLoop(ctx, cfg.ExportInterval)
		})
	}
	g.Go(func() error {
		return w.RunRecurringLoop(ctx, cfg.RecurringInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
