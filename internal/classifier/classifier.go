// Package classifier suggests a category for a transaction description.
// Suggestions never fail: when the model is unreachable, times out, or
// answers outside the category set, the result degrades to Other and the
// Degraded flag tells the caller a fallback was applied.
package classifier

import (
	"context"
	"strings"

	"fintrack/internal/core"
)

type (
	// Suggestion is a classifier verdict.
	Suggestion struct {
		Category core.Category
		Degraded bool
	}

	// Suggester proposes a category for a free-form description.
	Suggester interface {
		Suggest(ctx context.Context, description string) Suggestion
	}
)

// Normalize cleans a raw model answer and matches it against the category
// set. Everything except ASCII letters and whitespace is stripped before
// the exact match, so "Food." or "**Bills**" still land. The bool is false
// when the cleaned answer is not a known category.
func Normalize(raw string) (core.Category, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(r)
		}
	}
	c, err := core.ParseCategory(b.String())
	if err != nil {
		return core.CategoryOther, false
	}
	return c, true
}

// Disabled is the no-model classifier. Every description degrades to
// Other, which keeps ingestion working when no API key is configured.
type Disabled struct{}

func (Disabled) Suggest(_ context.Context, _ string) Suggestion {
	return Suggestion{Category: core.CategoryOther, Degraded: true}
}
