package core

import (
	"errors"
	"strings"
)

type (
	Money struct {
		Cents int64
	}

	// Transaction is a single recorded spend. ID is assigned by the store;
	// a draft passed to AppendTransaction carries ID zero.
	Transaction struct {
		ID          int64
		Date        Date
		Description string
		Amount      Money
		Category    Category
	}

	// Budget is a monthly spending limit for one category. Categories are
	// unique: writing a budget for an existing category replaces its limit.
	Budget struct {
		Category     Category
		MonthlyLimit Money
	}

	// DateFilter selects transactions by category membership and an
	// inclusive date range. A zero Start or End leaves that side unbounded.
	// An empty Categories set matches no transactions; callers that want
	// every category pass Categories().
	DateFilter struct {
		Categories []Category
		Start      Date
		End        Date
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidLimit       = errors.New("invalid budget limit")
	ErrInvalidRange       = errors.New("invalid date range")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")

	// ErrStoreUnavailable wraps persistence failures so callers can map
	// them to a retryable response without inspecting driver errors.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if !b.Category.IsValid() {
		return ErrInvalidCategory
	}
	if b.MonthlyLimit.Cents < 0 {
		return ErrInvalidLimit
	}
	return nil
}

func (f DateFilter) Validate() error {
	for _, c := range f.Categories {
		if !c.IsValid() {
			return ErrInvalidCategory
		}
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End.Time) {
		return ErrInvalidRange
	}
	return nil
}

// Matches reports whether the transaction falls inside the filter. Both
// range ends are inclusive.
func (f DateFilter) Matches(t Transaction) bool {
	inSet := false
	for _, c := range f.Categories {
		if c == t.Category {
			inSet = true
			break
		}
	}
	if !inSet {
		return false
	}
	if !f.Start.IsZero() && t.Date.Before(f.Start.Time) {
		return false
	}
	if !f.End.IsZero() && t.Date.After(f.End.Time) {
		return false
	}
	return true
}
