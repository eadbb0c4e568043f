package core

type (
	// MonthTotal is one point in a per-month spending series.
	MonthTotal struct {
		Month MonthKey
		Total Money
	}

	// Summary is the result of rolling up a filtered transaction set.
	// SpendByCategory covers only the month identified by Month; a
	// category with no spend that month is absent from the map, never
	// present with a zero value. MonthlyTotals spans the whole filtered
	// set in ascending month order, one entry per non-empty month.
	Summary struct {
		Month           MonthKey
		SpendByCategory map[Category]Money
		MonthlyTotals   []MonthTotal
	}

	// BudgetLine compares one budget against actual spend.
	// Remaining = Limit - Actual and is negative when over budget.
	BudgetLine struct {
		Category  Category
		Limit     Money
		Actual    Money
		Remaining Money
	}
)

// Spend returns the current-month spend for a category, zero when absent.
func (s Summary) Spend(c Category) Money {
	return s.SpendByCategory[c]
}

// IsOver reports whether spending exceeded the limit. Hitting the limit
// exactly is not over.
func (l BudgetLine) IsOver() bool {
	return l.Remaining.IsNegative()
}
