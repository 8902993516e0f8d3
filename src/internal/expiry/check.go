// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package expiry

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// CheckOne performs a single safe check. It never returns an error: this is
// the failure-absorption boundary of the engine. Any failure from the
// fetch or computation (resolution, connection, handshake, or anything a
// future fetcher might report) is captured as the failure variant of the
// Outcome. No partial records are ever produced.
func (f *Fetcher) CheckOne(ctx context.Context, domain string) Outcome {
	rec, err := f.Compute(ctx, domain)
	if err != nil {
		return Failure(domain, err)
	}
	return Success(domain, rec)
}

// CheckMany starts a safe check for every domain in the input and returns a
// channel that yields exactly one Outcome per input domain (duplicates
// included) in completion order, not input order: slow or unreachable
// domains must not delay reporting on fast, healthy ones. The channel is
// closed once every started check has completed.
//
// With Concurrency > 0, launches are gated through a weighted semaphore so
// at most that many handshakes are in flight; emission remains
// completion-ordered. With Concurrency <= 0 every check starts immediately,
// so callers checking very large lists should set a bound to protect the
// process's file-descriptor budget.
//
// The channel is buffered to hold all outcomes, so a consumer that stops
// reading early leaves the started checks running to completion in the
// background without blocking or leaking goroutines; no cancellation is
// propagated from consumer abandonment.
//
// Thread Safety: Safe for concurrent use.
func (f *Fetcher) CheckMany(ctx context.Context, domains []string) <-chan Outcome {
	results := make(chan Outcome, len(domains))

	check := f.checkOne
	if check == nil {
		check = f.CheckOne
	}

	var sem *semaphore.Weighted
	if f.Concurrency > 0 {
		sem = semaphore.NewWeighted(f.Concurrency)
	}

	var wg sync.WaitGroup
	for _, domain := range domains {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					results <- Failure(domain, err)
					return
				}
				defer sem.Release(1)
			}

			results <- check(ctx, domain)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
