package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

type monthTotalPayload struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type budgetLinePayload struct {
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Actual    string `json:"actual"`
	Remaining string `json:"remaining"`
	Over      bool   `json:"over"`
}

type dashboardPayload struct {
	Month           string              `json:"month"`
	SpendByCategory map[string]string   `json:"spend_by_category"`
	MonthlyTotals   []monthTotalPayload `json:"monthly_totals"`
	BudgetLines     []budgetLinePayload `json:"budget_lines"`
	OverBudget      []string            `json:"over_budget"`
	BudgetsSet      bool                `json:"budgets_set"`
}

func toDashboardPayload(d services.Dashboard) dashboardPayload {
	p := dashboardPayload{
		Month:           d.Summary.Month.String(),
		SpendByCategory: make(map[string]string, len(d.Summary.SpendByCategory)),
		MonthlyTotals:   make([]monthTotalPayload, 0, len(d.Summary.MonthlyTotals)),
		BudgetLines:     make([]budgetLinePayload, 0, len(d.BudgetLines)),
		OverBudget:      make([]string, 0, len(d.OverBudget)),
		BudgetsSet:      d.BudgetsSet,
	}
	for category, spend := range d.Summary.SpendByCategory {
		p.SpendByCategory[category.String()] = spend.String()
	}
	for _, mt := range d.Summary.MonthlyTotals {
		p.MonthlyTotals = append(p.MonthlyTotals, monthTotalPayload{
			Month: mt.Month.String(),
			Total: mt.Total.String(),
		})
	}
	for _, line := range d.BudgetLines {
		p.BudgetLines = append(p.BudgetLines, budgetLinePayload{
			Category:  line.Category.String(),
			Limit:     line.Limit.String(),
			Actual:    line.Actual.String(),
			Remaining: line.Remaining.String(),
			Over:      line.IsOver(),
		})
	}
	for _, c := range d.OverBudget {
		p.OverBudget = append(p.OverBudget, c.String())
	}
	return p
}

// handleDashboard renders the aggregate view for a filter and reference
// instant, serving from the LRU cache when a ledger write hasn't
// invalidated it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()

	q, err := parseDashboardQuery(r.URL.Query(), s.clock())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	key := dashboardCacheKey(q)
	if dash, found := s.dashCache.Get(key); found {
		s.logger.DebugContext(ctx, "Dashboard cache hit", "key", key)
		NewResponse().JSON(toDashboardPayload(dash)).Write(w)
		return
	}

	dash, err := s.reports.Dashboard(ctx, q.filter, q.now)
	if err != nil {
		s.logger.ErrorContext(ctx, "Dashboard build error", log.FieldError, err)
		errorResponseFor(err).Write(w)
		return
	}

	s.dashCache.Set(key, dash)
	s.logger.DebugContext(ctx, "Dashboard cached", "key", key,
		log.FieldMonth, dash.Summary.Month.String())

	NewResponse().JSON(toDashboardPayload(dash)).Write(w)
}

// dashboardCacheKey identifies a dashboard rendering. The rollup depends on
// the reference instant only through its month, so the key carries the
// month rather than the full timestamp.
func dashboardCacheKey(q dashboardQuery) string {
	categories := make([]string, 0, len(q.filter.Categories))
	for _, c := range q.filter.Categories {
		categories = append(categories, c.String())
	}

	var start, end string
	if !q.filter.Start.IsZero() {
		start = q.filter.Start.String()
	}
	if !q.filter.End.IsZero() {
		end = q.filter.End.String()
	}

	return strings.Join(categories, ",") + "|" + start + "|" + end + "|" + core.MonthKeyAt(q.now).String()
}
