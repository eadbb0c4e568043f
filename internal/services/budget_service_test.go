package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/store/memory"
)

func TestBudgetService_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewBudgetService(memory.New())

	if err := svc.Upsert(ctx, core.Budget{Category: core.CategoryFood, MonthlyLimit: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	// Second write for the same category replaces the limit.
	if err := svc.Upsert(ctx, core.Budget{Category: core.CategoryFood, MonthlyLimit: core.Money{Cents: 5000}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	budgets, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("List() returned %d budgets, want 1", len(budgets))
	}
	if got := budgets[core.CategoryFood].MonthlyLimit.Cents; got != 5000 {
		t.Errorf("Food limit = %d cents, want 5000", got)
	}
}

func TestBudgetService_UpsertValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewBudgetService(memory.New())

	err := svc.Upsert(ctx, core.Budget{Category: "Groceries", MonthlyLimit: core.Money{Cents: 100}})
	if !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("Upsert() error = %v, want ErrInvalidCategory", err)
	}

	err = svc.Upsert(ctx, core.Budget{Category: core.CategoryFood, MonthlyLimit: core.Money{Cents: -1}})
	if !errors.Is(err, core.ErrInvalidLimit) {
		t.Errorf("Upsert() error = %v, want ErrInvalidLimit", err)
	}
}
