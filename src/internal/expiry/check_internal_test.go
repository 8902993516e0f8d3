// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker simulates per-domain completion timings without any network.
func stubChecker(delays map[string]time.Duration, failures map[string]error) func(context.Context, string) Outcome {
	return func(ctx context.Context, domain string) Outcome {
		time.Sleep(delays[domain])
		if err, ok := failures[domain]; ok {
			return Failure(domain, err)
		}
		return Success(domain, NewRecord(time.Now().UTC().AddDate(0, 0, 30), time.Now().UTC()))
	}
}

func TestCheckManyCompletionOrder(t *testing.T) {
	f := New()
	f.checkOne = stubChecker(map[string]time.Duration{
		"a.example.com": 10 * time.Millisecond,
		"b.example.com": 50 * time.Millisecond,
		"c.example.com": 5 * time.Millisecond,
	}, nil)

	var got []string
	for outcome := range f.CheckMany(context.Background(), []string{"a.example.com", "b.example.com", "c.example.com"}) {
		got = append(got, outcome.Domain())
	}

	// Emission order reflects completion order, not input order.
	assert.Equal(t, []string{"c.example.com", "a.example.com", "b.example.com"}, got)
}

func TestCheckManyFailureIsolation(t *testing.T) {
	f := New()
	f.checkOne = stubChecker(nil, map[string]error{
		"broken.invalid": errors.New("no such host"),
	})

	domains := []string{"ok-one.example.com", "broken.invalid", "ok-two.example.com"}

	outcomes := make(map[string]Outcome, len(domains))
	for outcome := range f.CheckMany(context.Background(), domains) {
		outcomes[outcome.Domain()] = outcome
	}

	require.Len(t, outcomes, 3, "a failing domain must not block the others")

	assert.True(t, outcomes["ok-one.example.com"].Ok())
	assert.True(t, outcomes["ok-two.example.com"].Ok())

	failed := outcomes["broken.invalid"]
	assert.False(t, failed.Ok())
	assert.NotEmpty(t, failed.Err())
}

func TestCheckManyOneOutcomePerInput(t *testing.T) {
	f := New()
	f.checkOne = stubChecker(nil, nil)

	// Duplicates each get their own outcome.
	domains := []string{"dup.example.com", "dup.example.com", "other.example.com"}

	var count int
	for range f.CheckMany(context.Background(), domains) {
		count++
	}

	assert.Equal(t, len(domains), count)
}

func TestCheckManyEmptyInput(t *testing.T) {
	f := New()
	f.checkOne = stubChecker(nil, nil)

	results := f.CheckMany(context.Background(), nil)

	_, open := <-results
	assert.False(t, open, "channel must close after zero outcomes")
}

func TestCheckManyConcurrencyBound(t *testing.T) {
	var inFlight, peak atomic.Int64

	f := New()
	f.Concurrency = 2
	f.checkOne = func(ctx context.Context, domain string) Outcome {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return Success(domain, NewRecord(time.Now().UTC().AddDate(0, 0, 1), time.Now().UTC()))
	}

	domains := []string{"a.test", "b.test", "c.test", "d.test", "e.test", "f.test"}

	var count int
	for range f.CheckMany(context.Background(), domains) {
		count++
	}

	assert.Equal(t, len(domains), count)
	assert.LessOrEqual(t, peak.Load(), int64(2), "no more than Concurrency checks may be in flight")
}

// A consumer that walks away early must leave started checks running to
// completion without blocking them.
func TestCheckManyConsumerAbandonment(t *testing.T) {
	var completed atomic.Int64

	f := New()
	f.checkOne = func(ctx context.Context, domain string) Outcome {
		defer completed.Add(1)
		time.Sleep(5 * time.Millisecond)
		return Success(domain, NewRecord(time.Now().UTC().AddDate(0, 0, 1), time.Now().UTC()))
	}

	results := f.CheckMany(context.Background(), []string{"a.test", "b.test", "c.test", "d.test"})

	// Consume a single outcome, then stop reading.
	<-results

	assert.Eventually(t, func() bool {
		return completed.Load() == 4
	}, 2*time.Second, 10*time.Millisecond, "abandoned checks must still run to completion")
}
