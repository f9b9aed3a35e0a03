package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finboard/internal/auth"
	"finboard/internal/config"
	apphttp "finboard/internal/http"
	"finboard/internal/notify"
	"finboard/internal/services"
	"finboard/internal/storage"
	"finboard/internal/ws"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

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

	// Notification dispatch is optional; without AMQP the API runs with
	// alerts disabled.
	var notifier services.Notifier
	if cfg.AMQPURL != "" {
		client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		notifier = client
		logger.Info("Notification queue connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Notification queue disabled - no AMQP_URL provided")
	}

	authMgr := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	hub := ws.NewHub()

	categories := services.NewCategoryService(store)
	api := &apphttp.API{
		Auth:       authMgr,
		Users:      services.NewUserService(store, authMgr, categories),
		Categories: categories,
		Expenses:   services.NewExpenseService(store),
		Budgets:    services.NewBudgetService(store, notifier),
		Analytics:  services.NewAnalyticsService(store),
		Savings:    services.NewSavingsService(store, notifier),
		Tasks:      services.NewTaskService(store),
		Messages:   services.NewMessageService(store, hub),
		Dashboard:  services.NewDashboardService(store),
		Store:      store,
		Hub:        hub,
	}
	defer api.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Router(),
		// No WriteTimeout: websocket connections stay open far longer
		// than any request/response cycle.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting finboard server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped")
}
