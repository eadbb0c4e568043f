// Package memory is an in-process store used by tests and local runs
// where no database file is wanted. It mirrors the SQLite backend's
// semantics, including listing order and the keyed budget upsert.
package memory

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/core"
)

type Store struct {
	mu           sync.Mutex
	nextID       int64
	transactions []core.Transaction
	budgets      map[core.Category]core.Budget
}

func New() *Store {
	return &Store{
		nextID:  1,
		budgets: make(map[core.Category]core.Budget),
	}
}

// AppendTransaction implements store.TransactionAppender.
func (s *Store) AppendTransaction(_ context.Context, draft core.Transaction) (core.Transaction, error) {
	draft.ID = 0
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft.ID = s.nextID
	s.nextID++
	s.transactions = append(s.transactions, draft)
	return draft, nil
}

// ListTransactions implements store.TransactionLister.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]core.Transaction(nil), s.transactions...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpsertBudget implements store.BudgetWriter.
func (s *Store) UpsertBudget(_ context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.Category] = b
	return nil
}

// ListBudgets implements store.BudgetReader.
func (s *Store) ListBudgets(_ context.Context) (map[core.Category]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[core.Category]core.Budget, len(s.budgets))
	for c, b := range s.budgets {
		out[c] = b
	}
	return out, nil
}

// Ping implements store.Pinger. The memory store is always reachable.
func (s *Store) Ping(_ context.Context) error {
	return nil
}
