package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	logger.Info("Starting fintrack-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker exists to consume events; without a broker there is
	// nothing for it to do.
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}
	if cfg.DataBackend != config.BackendSQLite {
		logger.Warn("Memory backend gives the worker its own empty ledger; use sqlite to share data with the API",
			"backend", cfg.DataBackend)
	}

	result := cli.OpenStore(logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", log.FieldError, err)
			}
		}()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	watcher := worker.NewBudgetWatcher(
		services.NewReportService(result.Ledger),
		amqpClient,
		amqpClient,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		logger.Error("Failed to start budget watcher", log.FieldError, err)
		os.Exit(1)
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := watcher.Stop(shutdownCtx); err != nil {
		logger.Warn("Budget watcher shutdown timed out", log.FieldError, err)
		return
	}
	logger.Info("Worker shutdown complete")
}
