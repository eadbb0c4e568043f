package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAppendAndListTransactions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.AppendTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2024, 5, 1),
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Category:    core.CategoryFood,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	if _, err := st.AppendTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2024, 5, 15),
		Description: "Rent",
		Amount:      core.Money{Cents: 120000},
		Category:    core.CategoryHousing,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := st.AppendTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2024, 5, 15),
		Description: "Internet",
		Amount:      core.Money{Cents: 3000},
		Category:    core.CategoryBills,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	list, err := st.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(list))
	}
	// Newest date first; same-date ties resolve to the higher ID.
	if list[0].Description != "Internet" || list[1].Description != "Rent" || list[2].Description != "Coffee" {
		t.Fatalf("unexpected order: %q, %q, %q", list[0].Description, list[1].Description, list[2].Description)
	}
	if list[2].Amount.Cents != 450 || list[2].Category != core.CategoryFood {
		t.Fatalf("round trip mangled the row: %+v", list[2])
	}
	if !list[2].Date.Equal(core.NewDate(2024, 5, 1).Time) {
		t.Fatalf("expected date 2024-05-01, got %s", list[2].Date)
	}
}

func TestAppendTransactionZeroAmount(t *testing.T) {
	st := openTestStore(t)

	stored, err := st.AppendTransaction(context.Background(), core.Transaction{
		Date:        core.NewDate(2024, 5, 2),
		Description: "Free refill",
		Amount:      core.Money{Cents: 0},
		Category:    core.CategoryFood,
	})
	if err != nil {
		t.Fatalf("zero amount should be storable: %v", err)
	}
	if stored.Amount.Cents != 0 {
		t.Fatalf("expected 0 cents, got %d", stored.Amount.Cents)
	}
}

func TestAppendTransactionValidation(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name string
		tx   core.Transaction
		want error
	}{
		{"negative amount", core.Transaction{Date: core.NewDate(2024, 5, 1), Description: "x", Amount: core.Money{Cents: -1}, Category: core.CategoryFood}, core.ErrInvalidAmount},
		{"unknown category", core.Transaction{Date: core.NewDate(2024, 5, 1), Description: "x", Amount: core.Money{Cents: 1}, Category: "Snacks"}, core.ErrInvalidCategory},
		{"empty description", core.Transaction{Date: core.NewDate(2024, 5, 1), Description: " ", Amount: core.Money{Cents: 1}, Category: core.CategoryFood}, core.ErrEmptyDescription},
		{"zero date", core.Transaction{Description: "x", Amount: core.Money{Cents: 1}, Category: core.CategoryFood}, core.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := st.AppendTransaction(ctx, tc.tx); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	list, err := st.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected transactions must not be stored, found %d", len(list))
	}
}

func TestAppendTransactionIgnoresDraftID(t *testing.T) {
	st := openTestStore(t)

	stored, err := st.AppendTransaction(context.Background(), core.Transaction{
		ID:          999,
		Date:        core.NewDate(2024, 5, 1),
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Category:    core.CategoryFood,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if stored.ID == 999 {
		t.Fatalf("draft ID must be ignored, store assigns its own")
	}
}

func TestUpsertBudget(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.UpsertBudget(ctx, core.Budget{Category: core.CategoryFood, MonthlyLimit: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.UpsertBudget(ctx, core.Budget{Category: core.CategoryHousing, MonthlyLimit: core.Money{Cents: 120000}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Same category again replaces the limit instead of adding a row.
	if err := st.UpsertBudget(ctx, core.Budget{Category: core.CategoryFood, MonthlyLimit: core.Money{Cents: 5000}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	budgets, err := st.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if budgets[core.CategoryFood].MonthlyLimit.Cents != 5000 {
		t.Fatalf("expected replaced limit 5000, got %d", budgets[core.CategoryFood].MonthlyLimit.Cents)
	}
	if budgets[core.CategoryHousing].MonthlyLimit.Cents != 120000 {
		t.Fatalf("expected 120000, got %d", budgets[core.CategoryHousing].MonthlyLimit.Cents)
	}
}

func TestUpsertBudgetValidation(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.UpsertBudget(ctx, core.Budget{Category: "Snacks", MonthlyLimit: core.Money{Cents: 1}}); !errors.Is(err, core.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if err := st.UpsertBudget(ctx, core.Budget{Category: core.CategoryFood, MonthlyLimit: core.Money{Cents: -1}}); !errors.Is(err, core.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}

	budgets, err := st.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 0 {
		t.Fatalf("rejected budgets must not be stored, found %d", len(budgets))
	}
}

func TestPing(t *testing.T) {
	st := openTestStore(t)
	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fintrack.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := st.AppendTransaction(ctx, core.Transaction{
		Date:        core.NewDate(2024, 5, 1),
		Description: "Coffee",
		Amount:      core.Money{Cents: 450},
		Category:    core.CategoryFood,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Second open re-runs migrations as a no-op and sees the old rows.
	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	list, err := st2.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Description != "Coffee" {
		t.Fatalf("expected the stored transaction to survive reopen, got %+v", list)
	}
}
