package services

import (
	"context"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// BudgetService manages the per-category monthly limits.
type BudgetService struct {
	ledger store.Ledger
}

func NewBudgetService(ledger store.Ledger) *BudgetService {
	return &BudgetService{ledger: ledger}
}

// Upsert stores the budget, replacing any limit already set for its category.
func (s *BudgetService) Upsert(ctx context.Context, b core.Budget) error {
	if err := s.ledger.UpsertBudget(ctx, b); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

// List returns the budget for every category that has one.
func (s *BudgetService) List(ctx context.Context) (map[core.Category]core.Budget, error) {
	budgets, err := s.ledger.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}
