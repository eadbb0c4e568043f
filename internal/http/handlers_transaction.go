package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// transactionPayload is the wire shape of a stored transaction. Amounts
// travel both as a decimal string and as integer cents.
type transactionPayload struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
}

type createTransactionResponse struct {
	Transaction       transactionPayload `json:"transaction"`
	CategorySuggested bool               `json:"category_suggested"`
	Degraded          bool               `json:"degraded,omitempty"`
}

type listTransactionsResponse struct {
	Transactions []transactionPayload `json:"transactions"`
}

func toTransactionPayload(t core.Transaction) transactionPayload {
	return transactionPayload{
		ID:          t.ID,
		Date:        t.Date.String(),
		Description: t.Description,
		Amount:      t.Amount.String(),
		AmountCents: t.Amount.Cents,
		Category:    t.Category.String(),
	}
}

// handleTransactions dispatches /v1/transactions by method.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.ErrorContext(ctx, "Request body parse error",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		BadRequestError("malformed request body").Write(w)
		return
	}

	date, err := core.ParseDate(parser.Get("date"))
	if err != nil {
		UnprocessableEntityError("invalid date: want YYYY-MM-DD").Write(w)
		return
	}

	cents, err := core.ParseDecimalToCents(parser.Get("amount"))
	if err != nil {
		UnprocessableEntityError("invalid amount: want a non-negative decimal like 12.34").Write(w)
		return
	}

	draft := core.Transaction{
		Date:        date,
		Description: parser.Get("description"),
		Amount:      core.Money{Cents: cents},
	}

	// An empty category asks the service for a suggestion; anything else
	// must be a member of the category set.
	if raw := parser.Get("category"); raw != "" {
		category, err := core.ParseCategory(raw)
		if err != nil {
			UnprocessableEntityError("invalid category '" + raw + "'").Write(w)
			return
		}
		draft.Category = category
	}

	result, err := s.transactions.Record(ctx, draft)
	if err != nil {
		s.logger.ErrorContext(ctx, "Transaction record error",
			log.FieldError, err, log.FieldAmountCents, cents)
		errorResponseFor(err).Write(w)
		return
	}

	s.dashCache.Purge()

	NewResponse().
		Status(http.StatusCreated).
		JSON(createTransactionResponse{
			Transaction:       toTransactionPayload(result.Transaction),
			CategorySuggested: result.CategorySuggested,
			Degraded:          result.Degraded,
		}).
		Write(w)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, err := s.transactions.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Transaction list error", log.FieldError, err)
		errorResponseFor(err).Write(w)
		return
	}

	payload := listTransactionsResponse{
		Transactions: make([]transactionPayload, 0, len(transactions)),
	}
	for _, t := range transactions {
		payload.Transactions = append(payload.Transactions, toTransactionPayload(t))
	}

	NewResponse().JSON(payload).Write(w)
}
