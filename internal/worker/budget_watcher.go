package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/services"
)

type (
	// EventSource streams recorded-transaction events to a handler until
	// the context ends. *amqp.Client satisfies it.
	EventSource interface {
		ConsumeTransactionEvents(ctx context.Context, handler func(*amqp.TransactionRecorded) error) error
	}

	// AlertPublisher pushes budget alerts to the broker.
	AlertPublisher interface {
		PublishBudgetAlert(ctx context.Context, msg *amqp.BudgetAlert) error
	}
)

// alertKey identifies one published alert so a month's worth of events for
// the same exceeded category does not repeat it.
type alertKey struct {
	month    core.MonthKey
	category core.Category
}

// BudgetWatcher consumes transaction events and re-checks the event's month
// against the configured budgets, publishing an alert for each category that
// newly crossed its limit.
type BudgetWatcher struct {
	reports *services.ReportService
	events  EventSource
	alerts  AlertPublisher

	// Lifecycle management
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	doneCh  chan struct{}

	alerted map[alertKey]bool
}

func NewBudgetWatcher(reports *services.ReportService, events EventSource, alerts AlertPublisher) *BudgetWatcher {
	return &BudgetWatcher{
		reports: reports,
		events:  events,
		alerts:  alerts,
		alerted: make(map[alertKey]bool),
	}
}

// Start sweeps the current month once, then begins consuming transaction
// events. Returns an error if already running.
func (w *BudgetWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("budget watcher is already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.running = true
	w.cancel = cancel
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	// Cover anything that happened while the worker was down.
	if err := w.Sweep(runCtx, time.Now()); err != nil {
		slog.WarnContext(runCtx, "Startup sweep failed", "error", err)
	}

	go w.runLoop(runCtx)

	slog.InfoContext(ctx, "Budget watcher started")
	return nil
}

// Stop cancels the consume loop and waits for it to drain, or for ctx.
func (w *BudgetWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	cancel, done := w.cancel, w.doneCh
	w.mu.Unlock()

	cancel()

	select {
	case <-done:
		slog.InfoContext(ctx, "Budget watcher stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Budget watcher stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	return nil
}

// IsRunning returns whether the watcher is currently consuming.
func (w *BudgetWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *BudgetWatcher) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	err := w.events.ConsumeTransactionEvents(ctx, func(msg *amqp.TransactionRecorded) error {
		return w.HandleTransactionRecorded(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.ErrorContext(ctx, "Event consumption ended", "error", err)
	}
}

// HandleTransactionRecorded re-checks the month the event's transaction fell
// in. A malformed month is dropped rather than requeued; requeueing would
// loop the same broken payload forever.
func (w *BudgetWatcher) HandleTransactionRecorded(ctx context.Context, msg *amqp.TransactionRecorded) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"id", msg.ID,
		"category", msg.Category,
		"month", msg.Month)

	at, ok := msg.Month.Time()
	if !ok {
		slog.WarnContext(ctx, "Skipping event with malformed month",
			"id", msg.ID, "month", msg.Month)
		return nil
	}

	return w.checkMonth(ctx, at)
}

// Sweep re-checks the month containing now against the budgets.
func (w *BudgetWatcher) Sweep(ctx context.Context, now time.Time) error {
	return w.checkMonth(ctx, now)
}

func (w *BudgetWatcher) checkMonth(ctx context.Context, at time.Time) error {
	dashboard, err := w.reports.Dashboard(ctx, core.DateFilter{Categories: core.Categories()}, at)
	if err != nil {
		return fmt.Errorf("rebuild dashboard: %w", err)
	}

	month := core.MonthKeyAt(at)
	for _, line := range dashboard.BudgetLines {
		if !line.IsOver() {
			continue
		}
		if w.wasAlerted(month, line.Category) {
			slog.DebugContext(ctx, "Budget already alerted this month",
				"category", line.Category, "month", month)
			continue
		}

		slog.WarnContext(ctx, "Budget exceeded",
			"category", line.Category,
			"month", month,
			"limit_cents", line.Limit.Cents,
			"actual_cents", line.Actual.Cents,
			"over_cents", -line.Remaining.Cents)

		if err := w.alerts.PublishBudgetAlert(ctx, amqp.NewBudgetAlert(line, month)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish budget alert",
				"category", line.Category,
				"month", month,
				"error", err)
			// Left unmarked so the next event retries the publish
			continue
		}

		w.markAlerted(month, line.Category)
	}

	return nil
}

func (w *BudgetWatcher) wasAlerted(month core.MonthKey, category core.Category) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alerted[alertKey{month: month, category: category}]
}

func (w *BudgetWatcher) markAlerted(month core.MonthKey, category core.Category) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alerted[alertKey{month: month, category: category}] = true
}
