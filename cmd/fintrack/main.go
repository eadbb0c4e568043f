package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/classifier"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.OpenStore(logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", log.FieldError, err)
			}
		}()
	}

	// Category suggestions degrade to Other when the classifier is off.
	var suggester classifier.Suggester = classifier.Disabled{}
	if cfg.ClassifierEnabled() {
		gemini, err := classifier.NewGemini(context.Background(), cfg.GeminiAPIKey,
			cfg.ClassifierTimeout, logger.WithComponent(log.ComponentClassifier).Logger)
		if err != nil {
			logger.Error("Failed to initialize classifier", log.FieldError, err)
			os.Exit(1)
		}
		defer gemini.Close()
		suggester = gemini
		logger.Info("Gemini classifier initialized", "timeout", cfg.ClassifierTimeout)
	} else {
		logger.Info("Classifier disabled - suggestions fall back to Other")
	}

	// Transaction events are optional: with no broker configured the API
	// works, it just announces nothing.
	var events services.TransactionEventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to event broker, continuing without events",
				log.FieldError, err)
		} else {
			defer client.Close()
			events = client
			logger.Info("Event broker connected",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("Event broker not configured - transaction events disabled")
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:         ":" + cfg.Port,
		CacheTTL:     cfg.CacheTTL,
		CacheSize:    cfg.CacheSize,
		Transactions: services.NewTransactionService(result.Ledger, suggester, events),
		Budgets:      services.NewBudgetService(result.Ledger),
		Reports:      services.NewReportService(result.Ledger),
		Suggester:    suggester,
		Pinger:       result.Ledger,
		Logger:       logger.WithComponent(log.ComponentHTTP),
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
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

	logger.Info("Starting fintrack server",
		"port", cfg.Port, "backend", cfg.DataBackend, "classifier", cfg.Classifier)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
