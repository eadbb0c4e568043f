// Package report computes spending rollups and budget comparisons. Every
// function here is pure: transactions, budgets and the reference time all
// arrive as arguments, so callers decide what "now" means.
package report

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// Aggregate filters transactions and rolls them up two ways: per-category
// spend for the month containing now, and a total per calendar month over
// the whole filtered set. Months without transactions get no entry, and a
// category with no spend in the current month stays absent from the map.
// The filter is assumed valid; boundaries validate before calling.
func Aggregate(transactions []core.Transaction, filter core.DateFilter, now time.Time) core.Summary {
	month := core.MonthKeyAt(now)
	spend := make(map[core.Category]core.Money)
	totals := make(map[core.MonthKey]core.Money)

	for _, tx := range transactions {
		if !filter.Matches(tx) {
			continue
		}
		key := tx.Date.MonthKey()
		totals[key] = totals[key].Add(tx.Amount)
		if key == month {
			spend[tx.Category] = spend[tx.Category].Add(tx.Amount)
		}
	}

	monthly := make([]core.MonthTotal, 0, len(totals))
	for key, total := range totals {
		monthly = append(monthly, core.MonthTotal{Month: key, Total: total})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	return core.Summary{
		Month:           month,
		SpendByCategory: spend,
		MonthlyTotals:   monthly,
	}
}
