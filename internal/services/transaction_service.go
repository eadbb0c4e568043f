package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/classifier"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

// TransactionEventPublisher pushes recorded-transaction events to the broker.
// *amqp.Client satisfies it; tests substitute a fake.
type TransactionEventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecorded) error
}

// TransactionService orchestrates transaction writes: classify when the
// caller left the category blank, append to the ledger, then announce the
// write on the event bus.
type TransactionService struct {
	ledger    store.Ledger
	suggester classifier.Suggester
	events    TransactionEventPublisher
}

func NewTransactionService(ledger store.Ledger, suggester classifier.Suggester, events TransactionEventPublisher) *TransactionService {
	return &TransactionService{
		ledger:    ledger,
		suggester: suggester,
		events:    events,
	}
}

// RecordResult reports what Record stored and whether the category came from
// the classifier rather than the caller.
type RecordResult struct {
	Transaction       core.Transaction
	CategorySuggested bool
	Degraded          bool
}

// Record saves a transaction and publishes a transaction.recorded event.
// The event is best effort: only the ledger write decides success.
func (s *TransactionService) Record(ctx context.Context, draft core.Transaction) (RecordResult, error) {
	var result RecordResult

	if draft.Category == "" {
		suggestion := s.suggest(ctx, draft.Description)
		draft.Category = suggestion.Category
		result.CategorySuggested = true
		result.Degraded = suggestion.Degraded
	}

	stored, err := s.ledger.AppendTransaction(ctx, draft)
	if err != nil {
		return RecordResult{}, fmt.Errorf("save transaction: %w", err)
	}
	result.Transaction = stored

	if err := s.publishRecorded(ctx, stored); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", stored.ID, "error", err)
		// Don't fail the request - the transaction is saved locally
	}

	return result, nil
}

// List returns every stored transaction, newest date first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	transactions, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

func (s *TransactionService) suggest(ctx context.Context, description string) classifier.Suggestion {
	if s.suggester == nil {
		return classifier.Suggestion{Category: core.CategoryOther, Degraded: true}
	}
	return s.suggester.Suggest(ctx, description)
}

func (s *TransactionService) publishRecorded(ctx context.Context, tx core.Transaction) error {
	if s.events == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping transaction event")
		return nil
	}
	return s.events.PublishTransactionRecorded(ctx, amqp.NewTransactionRecorded(tx))
}
