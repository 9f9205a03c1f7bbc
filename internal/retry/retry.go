// Marquee - Movie Recommendations with Posters and Synopses
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package retry runs fallible operations under a bounded attempt policy.
//
// Each attempt receives its own context bounded by Policy.AttemptTimeout.
// Errors wrapped with Permanent stop the loop immediately; any other error
// is retried after Policy.Delay until Policy.Attempts is exhausted.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds a retry loop.
type Policy struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 are treated as 1.
	Attempts int

	// AttemptTimeout bounds each individual try. Zero disables the bound.
	AttemptTimeout time.Duration

	// Delay is the constant wait between tries.
	Delay time.Duration

	// OnRetry, if set, is called after a failed try that will be retried.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a permanent error, the attempts are
// exhausted, or ctx is done. The returned error is the last one seen, with
// any Permanent marker removed.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	tries := 0
	operation := func() (T, error) {
		tries++
		attemptCtx, cancel := attemptContext(ctx, p.AttemptTimeout)
		defer cancel()
		return op(attemptCtx)
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(p.Delay)),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	}
	if p.OnRetry != nil {
		opts = append(opts, backoff.WithNotify(func(err error, wait time.Duration) {
			p.OnRetry(tries, err, wait)
		}))
	}

	return backoff.Retry(ctx, operation, opts...)
}

func attemptContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
