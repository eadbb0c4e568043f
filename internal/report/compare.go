package report

import "fintrack/internal/core"

// Compare lines up each budget against the summary's current-month spend.
// The join is budget-driven: a category without a budget row never shows
// up, whatever was spent on it. Absent spend counts as zero. Lines come
// back in category display order so output is deterministic.
func Compare(summary core.Summary, budgets map[core.Category]core.Budget) []core.BudgetLine {
	lines := make([]core.BudgetLine, 0, len(budgets))
	for _, c := range core.Categories() {
		b, ok := budgets[c]
		if !ok {
			continue
		}
		actual := summary.Spend(c)
		lines = append(lines, core.BudgetLine{
			Category:  c,
			Limit:     b.MonthlyLimit,
			Actual:    actual,
			Remaining: b.MonthlyLimit.Sub(actual),
		})
	}
	return lines
}

// OverBudget collects the categories whose remaining budget went negative,
// preserving line order. Spending exactly up to the limit does not count.
func OverBudget(lines []core.BudgetLine) []core.Category {
	var over []core.Category
	for _, l := range lines {
		if l.IsOver() {
			over = append(over, l.Category)
		}
	}
	return over
}
