package store

import (
	"context"

	"fintrack/internal/core"
)

// Ports for persistence adapters.
type (
	TransactionAppender interface {
		// AppendTransaction validates the draft, assigns an ID and
		// persists it. The draft's ID field is ignored.
		AppendTransaction(ctx context.Context, draft core.Transaction) (core.Transaction, error)
	}

	TransactionLister interface {
		// ListTransactions returns every stored transaction, newest date
		// first; ties on the same date break toward the higher ID.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	BudgetWriter interface {
		// UpsertBudget inserts the budget or replaces the limit already
		// stored for its category.
		UpsertBudget(ctx context.Context, b core.Budget) error
	}

	BudgetReader interface {
		ListBudgets(ctx context.Context) (map[core.Category]core.Budget, error)
	}

	// Pinger reports whether the store is reachable. Readiness checks use it.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Ledger bundles the full surface a backend must provide.
	Ledger interface {
		TransactionAppender
		TransactionLister
		BudgetWriter
		BudgetReader
		Pinger
	}
)
