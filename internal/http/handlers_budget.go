package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// budgetPayload is the wire shape of one category budget.
type budgetPayload struct {
	Category     string `json:"category"`
	MonthlyLimit string `json:"monthly_limit"`
	LimitCents   int64  `json:"limit_cents"`
}

type upsertBudgetResponse struct {
	Budget budgetPayload `json:"budget"`
}

type listBudgetsResponse struct {
	Budgets []budgetPayload `json:"budgets"`
}

func toBudgetPayload(b core.Budget) budgetPayload {
	return budgetPayload{
		Category:     b.Category.String(),
		MonthlyLimit: b.MonthlyLimit.String(),
		LimitCents:   b.MonthlyLimit.Cents,
	}
}

// handleBudgets dispatches /v1/budgets by method.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		s.handleUpsertBudget(w, r)
	case http.MethodGet:
		s.handleListBudgets(w, r)
	default:
		MethodNotAllowedError("GET, PUT").Write(w)
	}
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.ErrorContext(ctx, "Request body parse error",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		BadRequestError("malformed request body").Write(w)
		return
	}

	category, err := core.ParseCategory(parser.Get("category"))
	if err != nil {
		UnprocessableEntityError("invalid category '" + parser.Get("category") + "'").Write(w)
		return
	}

	cents, err := core.ParseDecimalToCents(parser.Get("monthly_limit"))
	if err != nil {
		UnprocessableEntityError("invalid monthly limit: want a non-negative decimal like 100.00").Write(w)
		return
	}

	budget := core.Budget{
		Category:     category,
		MonthlyLimit: core.Money{Cents: cents},
	}

	if err := s.budgets.Upsert(ctx, budget); err != nil {
		s.logger.ErrorContext(ctx, "Budget upsert error",
			log.FieldError, err, log.FieldCategory, category.String())
		errorResponseFor(err).Write(w)
		return
	}

	s.dashCache.Purge()

	NewResponse().JSON(upsertBudgetResponse{Budget: toBudgetPayload(budget)}).Write(w)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Budget list error", log.FieldError, err)
		errorResponseFor(err).Write(w)
		return
	}

	// Category order, not map order.
	payload := listBudgetsResponse{Budgets: make([]budgetPayload, 0, len(budgets))}
	for _, category := range core.Categories() {
		if b, ok := budgets[category]; ok {
			payload.Budgets = append(payload.Budgets, toBudgetPayload(b))
		}
	}

	NewResponse().JSON(payload).Write(w)
}
