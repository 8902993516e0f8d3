// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-expiry-checker/src/internal/expiry"
)

func TestNewRecord(t *testing.T) {
	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		expiry        time.Time
		wantDays      int
		wantExpired   bool
		wantRemaining string
	}{
		{
			name:          "Far Future",
			expiry:        now.AddDate(0, 0, 75),
			wantDays:      75,
			wantExpired:   false,
			wantRemaining: "2 months, 15 days",
		},
		{
			name:          "Expires Today",
			expiry:        now.Add(6 * time.Hour),
			wantDays:      0,
			wantExpired:   false,
			wantRemaining: "0 days",
		},
		{
			// Fractional days floor toward negative infinity: expired by
			// one hour is -1 days, not 0.
			name:          "Expired By One Hour",
			expiry:        now.Add(-time.Hour),
			wantDays:      -1,
			wantExpired:   true,
			wantRemaining: "EXPIRED",
		},
		{
			name:          "Expired Ten Days Ago",
			expiry:        now.AddDate(0, 0, -10),
			wantDays:      -10,
			wantExpired:   true,
			wantRemaining: "EXPIRED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := expiry.NewRecord(tt.expiry, now)

			assert.Equal(t, tt.wantDays, rec.DaysRemaining)
			assert.Equal(t, tt.wantExpired, rec.IsExpired)
			assert.Equal(t, tt.wantRemaining, rec.TimeRemaining)
			assert.Equal(t, rec.IsExpired, rec.DaysRemaining < 0, "IsExpired must track the sign of DaysRemaining")
			assert.Equal(t, time.UTC, rec.ExpiryDate.Location())
		})
	}
}

func TestOutcomeVariants(t *testing.T) {
	rec := expiry.NewRecord(time.Now().UTC().AddDate(0, 0, 30), time.Now().UTC())

	success := expiry.Success("example.com", rec)
	assert.True(t, success.Ok())
	assert.Equal(t, "example.com", success.Domain())
	assert.Empty(t, success.Err())
	got, ok := success.Record()
	require.True(t, ok)
	assert.Equal(t, rec, got)

	failure := expiry.Failure("bad.invalid", errors.New("no such host"))
	assert.False(t, failure.Ok())
	assert.Equal(t, "bad.invalid", failure.Domain())
	assert.Equal(t, "no such host", failure.Err())
	_, ok = failure.Record()
	assert.False(t, ok)
}

// Exactly one of {data, error} must survive a round trip through the wire
// format used by the CLI and HTTP collaborators.
func TestOutcomeJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		outcome expiry.Outcome
	}{
		{
			name:    "Success Variant",
			outcome: expiry.Success("example.com", expiry.NewRecord(now.AddDate(1, 0, 0), now)),
		},
		{
			name:    "Failure Variant",
			outcome: expiry.Failure("unreachable.invalid", errors.New("connection refused")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.outcome)
			require.NoError(t, err)

			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &raw))
			assert.Contains(t, raw, "domain")
			assert.Contains(t, raw, "data")
			assert.Contains(t, raw, "error")

			var decoded expiry.Outcome
			require.NoError(t, json.Unmarshal(data, &decoded))

			assert.Equal(t, tt.outcome.Domain(), decoded.Domain())
			assert.Equal(t, tt.outcome.Ok(), decoded.Ok())
			assert.Equal(t, tt.outcome.Err(), decoded.Err())

			if tt.outcome.Ok() {
				want, _ := tt.outcome.Record()
				got, ok := decoded.Record()
				require.True(t, ok)
				assert.True(t, want.ExpiryDate.Equal(got.ExpiryDate))
				assert.Equal(t, want.TimeRemaining, got.TimeRemaining)
				assert.Equal(t, want.IsExpired, got.IsExpired)
				assert.Equal(t, want.DaysRemaining, got.DaysRemaining)
			}
		})
	}
}
