package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// TransactionRecorded announces a stored transaction. It carries only
// what the alert worker needs to know which month to re-check; consumers
// fetch everything else from the store.
type TransactionRecorded struct {
	ID        int64         `json:"id"`
	Category  core.Category `json:"category"`
	Month     core.MonthKey `json:"month"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewTransactionRecorded builds the event for a freshly stored transaction.
func NewTransactionRecorded(tx core.Transaction) *TransactionRecorded {
	return &TransactionRecorded{
		ID:        tx.ID,
		Category:  tx.Category,
		Month:     tx.Date.MonthKey(),
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionRecorded) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedFromJSON creates a message from JSON bytes.
func TransactionRecordedFromJSON(data []byte) (*TransactionRecorded, error) {
	var msg TransactionRecorded
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BudgetAlert reports a category whose monthly spend exceeded its limit.
type BudgetAlert struct {
	Category    core.Category `json:"category"`
	Month       core.MonthKey `json:"month"`
	LimitCents  int64         `json:"limit_cents"`
	ActualCents int64         `json:"actual_cents"`
	Timestamp   time.Time     `json:"timestamp"`
}

// NewBudgetAlert builds the alert for one exceeded budget line.
func NewBudgetAlert(line core.BudgetLine, month core.MonthKey) *BudgetAlert {
	return &BudgetAlert{
		Category:    line.Category,
		Month:       month,
		LimitCents:  line.Limit.Cents,
		ActualCents: line.Actual.Cents,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the alert to JSON bytes.
func (m *BudgetAlert) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertFromJSON creates an alert from JSON bytes.
func BudgetAlertFromJSON(data []byte) (*BudgetAlert, error) {
	var msg BudgetAlert
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
