// Package sqlite persists transactions and budgets in a single SQLite
// file via the pure-Go driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed, runs the
// embedded migrations and returns a ready store.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendTransaction implements store.TransactionAppender.
func (s *Store) AppendTransaction(ctx context.Context, draft core.Transaction) (core.Transaction, error) {
	draft.ID = 0
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (date, description, amount_cents, category)
		 VALUES (?, ?, ?, ?)`,
		draft.Date.String(), draft.Description, draft.Amount.Cents, draft.Category.String())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w: %v", core.ErrStoreUnavailable, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read inserted transaction id: %w: %v", core.ErrStoreUnavailable, err)
	}
	draft.ID = id

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", draft.ID,
		"date", draft.Date.String(),
		"amount_cents", draft.Amount.Cents,
		"category", draft.Category)

	return draft, nil
}

// ListTransactions implements store.TransactionLister.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, description, amount_cents, category
		 FROM transactions
		 ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w: %v", core.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx      core.Transaction
			rawDate string
			rawCat  string
		)
		if err := rows.Scan(&tx.ID, &rawDate, &tx.Description, &tx.Amount.Cents, &rawCat); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date, err = core.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: bad stored date %q", tx.ID, rawDate)
		}
		tx.Category, err = core.ParseCategory(rawCat)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: bad stored category %q", tx.ID, rawCat)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w: %v", core.ErrStoreUnavailable, err)
	}
	return out, nil
}

// UpsertBudget implements store.BudgetWriter. The budgets table is keyed
// by category, so a second write for the same category replaces the limit.
func (s *Store) UpsertBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (category, limit_cents) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET limit_cents = excluded.limit_cents`,
		b.Category.String(), b.MonthlyLimit.Cents)
	if err != nil {
		return fmt.Errorf("upsert budget: %w: %v", core.ErrStoreUnavailable, err)
	}

	slog.InfoContext(ctx, "Budget saved to SQLite",
		"category", b.Category,
		"limit_cents", b.MonthlyLimit.Cents)

	return nil
}

// ListBudgets implements store.BudgetReader.
func (s *Store) ListBudgets(ctx context.Context) (map[core.Category]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_cents FROM budgets`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w: %v", core.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make(map[core.Category]core.Budget)
	for rows.Next() {
		var (
			rawCat string
			cents  int64
		)
		if err := rows.Scan(&rawCat, &cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		cat, err := core.ParseCategory(rawCat)
		if err != nil {
			return nil, fmt.Errorf("budget row: bad stored category %q", rawCat)
		}
		out[cat] = core.Budget{Category: cat, MonthlyLimit: core.Money{Cents: cents}}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w: %v", core.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Ping implements store.Pinger.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}
