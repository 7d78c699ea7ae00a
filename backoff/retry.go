// Package backoff retries catalog requests with exponential backoff.
// It wraps github.com/cenkalti/backoff/v4 around a bookshelf.Fetcher and a
// caller-supplied response parser.
package backoff

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fwojciec/bookshelf"
)

// Default delay bounds: 500ms, 1s, 2s, 4s, 8s, 8s...
const (
	DefaultInitialInterval = 500 * time.Millisecond
	DefaultMaxInterval     = 8 * time.Second
)

// ParseFunc decodes a response body.
type ParseFunc[T any] func(body []byte) (T, error)

// Policy returns a fresh delay sequence for one Fetch call.
type Policy func() backoff.BackOff

// DefaultPolicy returns the exponential delays used in production.
func DefaultPolicy() backoff.BackOff {
	return Exponential(DefaultInitialInterval, DefaultMaxInterval)
}

// Exponential returns delays starting at initial and doubling up to max.
// Jitter is disabled so the sequence never decreases.
func Exponential(initial, max time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = max
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// NoDelay retries immediately. Useful for tests.
func NoDelay() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

// Fetch requests url through f and decodes the body with parse, retrying
// up to maxRetries additional times with DefaultPolicy delays.
func Fetch[T any](ctx context.Context, f bookshelf.Fetcher, url string, maxRetries int, parse ParseFunc[T]) (T, error) {
	return FetchWithPolicy(ctx, f, url, maxRetries, parse, DefaultPolicy)
}

// FetchWithPolicy is like Fetch but allows a configurable delay policy.
//
// Transport failures, non-2xx statuses and parse failures are all retried.
// A malformed URL fails at once. Once attempts are exhausted the last
// *bookshelf.NetworkError is returned; a canceled context returns the
// context error.
func FetchWithPolicy[T any](ctx context.Context, f bookshelf.Fetcher, url string, maxRetries int, parse ParseFunc[T], policy Policy) (T, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var result T
	operation := func() error {
		body, err := f.Fetch(ctx, url)
		if err != nil {
			netErr := asNetworkError(url, err)
			if netErr.Kind == bookshelf.NetworkBadURL {
				return backoff.Permanent(netErr)
			}
			return netErr
		}

		v, err := parse(body)
		if err != nil {
			return &bookshelf.NetworkError{Kind: bookshelf.NetworkParse, URL: url, Err: err}
		}
		result = v
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy(), uint64(maxRetries)), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// asNetworkError classifies errors from fetchers that don't already
// report a *bookshelf.NetworkError.
func asNetworkError(url string, err error) *bookshelf.NetworkError {
	var netErr *bookshelf.NetworkError
	if errors.As(err, &netErr) {
		return netErr
	}
	return &bookshelf.NetworkError{Kind: bookshelf.NetworkTransport, URL: url, Err: err}
}
