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

	"frota/internal/advisor"
	"frota/internal/amqp"
	"frota/internal/config"
	apphttp "frota/internal/http"
	"frota/internal/log"
	"frota/internal/services"
	"frota/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentApp})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	st := store.New()
	if err := st.LoadSeed(cfg.DataDir); err != nil {
		logger.Error("Failed to load seed data", log.FieldError, err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	// AMQP publishing is optional; without it expenses stay in memory only.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP publishing disabled - no AMQP_URL provided")
	}

	expenses := services.NewExpenseService(st, publisher)

	opts := apphttp.Options{
		DistanceFactor: cfg.DistanceFactor,
		Logger:         logger,
	}
	if cfg.AdvisorEnabled() {
		gemini := advisor.NewGeminiClient(cfg.AdvisorBaseURL, cfg.AdvisorModel, cfg.AdvisorAPIKey, cfg.AdvisorTimeout)
		opts.Analyzer = gemini
		opts.Insights = gemini
		logger.Info("Advisory client enabled", "model", cfg.AdvisorModel)
	} else {
		logger.Info("Advisory client disabled - no ADVISOR_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, expenses, opts)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 15 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

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
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting frota server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
