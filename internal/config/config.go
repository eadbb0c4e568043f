// Package config loads and validates the process configuration from the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
)

// Classifier modes.
const (
	ClassifierGemini   = "gemini"
	ClassifierDisabled = "disabled"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// HTTP Server
	Port string `env:"PORT" envDefault:"8080"`

	// Storage backend
	DataBackend  string `env:"DATA_BACKEND" envDefault:"sqlite"`
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/fintrack.db"`

	// Category classifier
	Classifier        string        `env:"CLASSIFIER" envDefault:"disabled"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"10s"`

	// AMQP; an empty URL turns messaging off
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"fintrack"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"transaction_events"`

	// Dashboard response cache
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CacheSize int           `env:"CACHE_SIZE" envDefault:"128"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{BackendSQLite, BackendMemory}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == BackendSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate classifier mode
	switch c.Classifier {
	case ClassifierDisabled:
	case ClassifierGemini:
		if c.GeminiAPIKey == "" {
			errors = append(errors, "GEMINI_API_KEY is required when CLASSIFIER is 'gemini'")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid classifier '%s': must be '%s' or '%s'", c.Classifier, ClassifierGemini, ClassifierDisabled))
	}

	if c.ClassifierTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid classifier timeout %v: must be at least 1 second", c.ClassifierTimeout))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate cache configuration
	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ClassifierEnabled reports whether the Gemini classifier should be wired.
func (c *Config) ClassifierEnabled() bool {
	return c.Classifier == ClassifierGemini
}
