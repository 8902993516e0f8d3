// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/expiry"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		days int
		want string
	}{
		{name: "Zero Days", days: 0, want: "0 days"},
		{name: "Single Day", days: 1, want: "1 day"},
		{name: "Multiple Days", days: 2, want: "2 days"},
		{name: "Days Below One Month", days: 29, want: "29 days"},
		{name: "Exactly One Month", days: 30, want: "1 month"},
		{name: "Month And Days", days: 45, want: "1 month, 15 days"},
		{name: "Multiple Months", days: 75, want: "2 months, 15 days"},
		{name: "Exactly One Year", days: 365, want: "1 year"},
		{name: "Year And Day", days: 366, want: "1 year, 1 day"},
		{name: "Year Month And Days", days: 365 + 45, want: "1 year, 1 month, 15 days"},
		{name: "Multiple Years", days: 730, want: "2 years"},
		{name: "Expired By One Day", days: -1, want: "EXPIRED"},
		{name: "Expired Long Ago", days: -1000, want: "EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expiry.FormatRemaining(tt.days))
		})
	}
}

// Non-negative inputs must never produce an empty clause list.
func TestFormatRemainingNeverEmpty(t *testing.T) {
	for days := 0; days <= 2*365; days++ {
		assert.NotEmpty(t, expiry.FormatRemaining(days), "days=%d", days)
	}
}
