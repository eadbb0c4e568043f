package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/report"
	"fintrack/internal/store"
)

// Dashboard bundles everything the dashboard view needs: the month summary,
// the budget comparison and which categories ran over.
type Dashboard struct {
	Summary     core.Summary
	BudgetLines []core.BudgetLine
	OverBudget  []core.Category
	BudgetsSet  bool
}

// ReportService derives dashboards from the ledger. Reads never mutate the
// store; every request sees a consistent snapshot of both tables.
type ReportService struct {
	ledger store.Ledger
}

func NewReportService(ledger store.Ledger) *ReportService {
	return &ReportService{ledger: ledger}
}

// Dashboard loads transactions and budgets in parallel, then runs the pure
// aggregation and comparison. now anchors the current month; callers pass
// the request time or an explicit override.
func (s *ReportService) Dashboard(ctx context.Context, filter core.DateFilter, now time.Time) (Dashboard, error) {
	if err := filter.Validate(); err != nil {
		return Dashboard{}, fmt.Errorf("validate filter: %w", err)
	}

	var (
		transactions []core.Transaction
		budgets      map[core.Category]core.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.ledger.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.ledger.ListBudgets(gctx)
		if err != nil {
			return fmt.Errorf("load budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	summary := report.Aggregate(transactions, filter, now)
	lines := report.Compare(summary, budgets)

	return Dashboard{
		Summary:     summary,
		BudgetLines: lines,
		OverBudget:  report.OverBudget(lines),
		BudgetsSet:  len(budgets) > 0,
	}, nil
}
