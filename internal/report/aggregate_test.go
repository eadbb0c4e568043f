package report

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

var may20 = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 5, 1), Description: "Coffee", Amount: core.Money{Cents: 450}, Category: core.CategoryFood},
		{ID: 2, Date: core.NewDate(2024, 5, 15), Description: "Rent", Amount: core.Money{Cents: 120000}, Category: core.CategoryHousing},
	}
}

func allFilter() core.DateFilter {
	return core.DateFilter{Categories: core.Categories()}
}

func TestAggregateCurrentMonthSpend(t *testing.T) {
	sum := Aggregate(sampleTransactions(), allFilter(), may20)

	if sum.Month != core.MonthKey("2024-05") {
		t.Fatalf("expected month 2024-05, got %q", sum.Month)
	}
	if got := sum.Spend(core.CategoryFood); got.Cents != 450 {
		t.Fatalf("Food: expected 450 cents, got %d", got.Cents)
	}
	if got := sum.Spend(core.CategoryHousing); got.Cents != 120000 {
		t.Fatalf("Housing: expected 120000 cents, got %d", got.Cents)
	}
	if len(sum.SpendByCategory) != 2 {
		t.Fatalf("expected 2 categories with spend, got %d", len(sum.SpendByCategory))
	}
}

func TestAggregateMonthlyTotalsSplitsMonths(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 4, 30), Description: "April", Amount: core.Money{Cents: 100}, Category: core.CategoryFood},
		{ID: 2, Date: core.NewDate(2024, 5, 1), Description: "May", Amount: core.Money{Cents: 200}, Category: core.CategoryFood},
	}
	filter := core.DateFilter{
		Categories: core.Categories(),
		Start:      core.NewDate(2024, 4, 1),
		End:        core.NewDate(2024, 5, 31),
	}
	sum := Aggregate(txs, filter, may20)

	if len(sum.MonthlyTotals) != 2 {
		t.Fatalf("expected 2 monthly entries, got %d", len(sum.MonthlyTotals))
	}
	if sum.MonthlyTotals[0].Month != "2024-04" || sum.MonthlyTotals[0].Total.Cents != 100 {
		t.Fatalf("first entry: expected 2024-04/100, got %s/%d",
			sum.MonthlyTotals[0].Month, sum.MonthlyTotals[0].Total.Cents)
	}
	if sum.MonthlyTotals[1].Month != "2024-05" || sum.MonthlyTotals[1].Total.Cents != 200 {
		t.Fatalf("second entry: expected 2024-05/200, got %s/%d",
			sum.MonthlyTotals[1].Month, sum.MonthlyTotals[1].Total.Cents)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	sum := Aggregate(nil, allFilter(), may20)

	if len(sum.SpendByCategory) != 0 {
		t.Fatalf("expected empty spend map, got %d entries", len(sum.SpendByCategory))
	}
	if len(sum.MonthlyTotals) != 0 {
		t.Fatalf("expected no monthly totals, got %d", len(sum.MonthlyTotals))
	}
}

func TestAggregateAbsentCategoryHasNoZeroRow(t *testing.T) {
	sum := Aggregate(sampleTransactions(), allFilter(), may20)

	if _, present := sum.SpendByCategory[core.CategoryBills]; present {
		t.Fatalf("Bills has no spend and must be absent, not zero")
	}
	// Absent reads as zero through the accessor.
	if got := sum.Spend(core.CategoryBills); got.Cents != 0 {
		t.Fatalf("expected zero spend for absent category, got %d", got.Cents)
	}
}

func TestAggregateFilterContainment(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 5, 1), Description: "in set", Amount: core.Money{Cents: 100}, Category: core.CategoryFood},
		{ID: 2, Date: core.NewDate(2024, 5, 2), Description: "out of set", Amount: core.Money{Cents: 200}, Category: core.CategoryBills},
		{ID: 3, Date: core.NewDate(2024, 6, 1), Description: "out of range", Amount: core.Money{Cents: 300}, Category: core.CategoryFood},
		{ID: 4, Date: core.NewDate(2024, 5, 31), Description: "end boundary", Amount: core.Money{Cents: 400}, Category: core.CategoryFood},
	}
	filter := core.DateFilter{
		Categories: []core.Category{core.CategoryFood},
		Start:      core.NewDate(2024, 5, 1),
		End:        core.NewDate(2024, 5, 31),
	}
	sum := Aggregate(txs, filter, may20)

	if got := sum.Spend(core.CategoryFood); got.Cents != 500 {
		t.Fatalf("expected 500 cents (boundaries inclusive, rest excluded), got %d", got.Cents)
	}
	if _, present := sum.SpendByCategory[core.CategoryBills]; present {
		t.Fatalf("category outside the filter set leaked into the rollup")
	}
	if len(sum.MonthlyTotals) != 1 || sum.MonthlyTotals[0].Total.Cents != 500 {
		t.Fatalf("monthly totals should cover only filtered transactions: %+v", sum.MonthlyTotals)
	}
}

func TestAggregateEmptyCategorySetMatchesNothing(t *testing.T) {
	sum := Aggregate(sampleTransactions(), core.DateFilter{}, may20)
	if len(sum.SpendByCategory) != 0 || len(sum.MonthlyTotals) != 0 {
		t.Fatalf("empty category set must select nothing, got %+v", sum)
	}
}

func TestAggregateConservation(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 1, 10), Amount: core.Money{Cents: 111}, Description: "a", Category: core.CategoryFood},
		{ID: 2, Date: core.NewDate(2024, 2, 11), Amount: core.Money{Cents: 222}, Description: "b", Category: core.CategoryBills},
		{ID: 3, Date: core.NewDate(2024, 2, 12), Amount: core.Money{Cents: 333}, Description: "c", Category: core.CategoryOther},
		{ID: 4, Date: core.NewDate(2024, 3, 13), Amount: core.Money{Cents: 444}, Description: "d", Category: core.CategoryHousing},
	}
	var direct int64
	for _, tx := range txs {
		direct += tx.Amount.Cents
	}

	sum := Aggregate(txs, allFilter(), may20)
	var rolled int64
	for _, mt := range sum.MonthlyTotals {
		rolled += mt.Total.Cents
	}
	if rolled != direct {
		t.Fatalf("monthly totals sum %d, direct sum %d", rolled, direct)
	}
}

func TestAggregateSpendRestrictedToCurrentMonth(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 4, 2), Description: "last month", Amount: core.Money{Cents: 999}, Category: core.CategoryFood},
		{ID: 2, Date: core.NewDate(2024, 5, 2), Description: "this month", Amount: core.Money{Cents: 450}, Category: core.CategoryFood},
	}
	sum := Aggregate(txs, allFilter(), may20)

	if got := sum.Spend(core.CategoryFood); got.Cents != 450 {
		t.Fatalf("spend must cover only the month of now, got %d", got.Cents)
	}
	if len(sum.MonthlyTotals) != 2 {
		t.Fatalf("monthly totals still span the filtered set, got %d entries", len(sum.MonthlyTotals))
	}
}

func TestAggregateAddingTransactionNeverShrinksTotals(t *testing.T) {
	base := sampleTransactions()
	before := Aggregate(base, allFilter(), may20)

	extra := append(append([]core.Transaction{}, base...), core.Transaction{
		ID: 3, Date: core.NewDate(2024, 5, 18), Description: "Pizza",
		Amount: core.Money{Cents: 1500}, Category: core.CategoryFood,
	})
	after := Aggregate(extra, allFilter(), may20)

	if after.Spend(core.CategoryFood).Cents != before.Spend(core.CategoryFood).Cents+1500 {
		t.Fatalf("Food spend should grow by exactly the new amount")
	}
	for _, c := range core.Categories() {
		if after.Spend(c).Cents < before.Spend(c).Cents {
			t.Fatalf("%s spend shrank after adding a transaction", c)
		}
	}
}
