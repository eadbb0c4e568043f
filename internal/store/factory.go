// Package store defines the persistence ports and opens the configured
// backend behind them.
package store

import (
	"fmt"
	"log/slog"

	"fintrack/internal/store/memory"
	"fintrack/internal/store/sqlite"
)

// Type selects a persistence backend.
type Type string

const (
	SQLiteStore Type = "sqlite"
	MemoryStore Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteStore, MemoryStore:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources during shutdown.
type CleanupFunc func() error

// Result carries an opened backend and its optional cleanup.
type Result struct {
	Ledger  Ledger
	Cleanup CleanupFunc
}

// Config holds what Open needs to build a backend.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string
}

// Open builds the backend named by the config. The returned cleanup may
// be nil when the backend holds nothing to release.
func Open(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid store type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteStore:
		st, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite store", "db_path", cfg.SQLiteDBPath)
		return &Result{Ledger: st, Cleanup: st.Close}, nil
	case MemoryStore:
		logger.Info("Initialized memory store")
		return &Result{Ledger: memory.New(), Cleanup: nil}, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
