// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/fintrack and cmd/fintrack-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

// SetupLogger initializes structured logging with default settings.
// The returned logger carries no component tag; callers derive
// per-subsystem loggers with WithComponent. It is also installed as
// the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{Level: slog.LevelInfo})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the persistence backend named by the config.
// Returns the opened store or exits the process on failure.
func OpenStore(logger *log.Logger, cfg *config.Config) *store.Result {
	result, err := store.Open(store.Config{
		Type:         store.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger.WithComponent(log.ComponentStore).Logger)
	if err != nil {
		logger.Error("Failed to open store", log.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return result
}
