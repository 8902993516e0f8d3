// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry

import (
	"fmt"
	"strings"
)

// FormatRemaining converts a day count into a human-readable duration string.
//
// Negative day counts return the literal "EXPIRED". Non-negative counts are
// decomposed into whole years (365-day years), whole months of the remainder
// (30-day months), and leftover days. The decomposition is a deliberate
// calendar approximation for a status string, not a calendar computation;
// downstream display text depends on these exact figures.
//
// A day clause is always emitted when no other clause is, so the result is
// never empty: FormatRemaining(0) == "0 days".
//
// Parameters:
//   - days: Whole days until expiration; negative means already expired
//
// Returns:
//   - string: Comma-separated clause list, e.g. "1 year, 2 months, 3 days"
func FormatRemaining(days int) string {
	if days < 0 {
		return "EXPIRED"
	}

	years := days / 365
	remaining := days % 365
	months := remaining / 30
	days = remaining % 30

	var parts []string
	if years > 0 {
		parts = append(parts, pluralize(years, "year"))
	}
	if months > 0 {
		parts = append(parts, pluralize(months, "month"))
	}
	if days > 0 || len(parts) == 0 {
		parts = append(parts, pluralize(days, "day"))
	}

	return strings.Join(parts, ", ")
}

// pluralize renders a count with its unit, singular exactly when the count is 1.
func pluralize(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
