// Package http provides the net/http implementation of bookshelf.Fetcher
// used to talk to the book catalogs' JSON APIs.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/bookshelf"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the client to catalog APIs.
// Open Library asks clients to send a descriptive User-Agent.
const DefaultUserAgent = "bookshelf/1.0 (+https://github.com/fwojciec/bookshelf)"

// DefaultMaxBodySize caps how much of a response body is read.
// Catalog responses are a few hundred kilobytes at most.
const DefaultMaxBodySize = 8 << 20

// Ensure Fetcher implements bookshelf.Fetcher at compile time.
var _ bookshelf.Fetcher = (*Fetcher)(nil)

// Fetcher performs single GET requests. It never retries.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   *HostLimiter
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHostLimiter throttles requests per host.
// Without it requests are sent as fast as callers issue them.
func WithHostLimiter(l *HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize. Larger bodies fail the
// fetch instead of being truncated.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of rawURL.
// Failures are reported as *bookshelf.NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &bookshelf.NetworkError{Kind: bookshelf.NetworkBadURL, URL: rawURL, Err: err}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, &bookshelf.NetworkError{Kind: bookshelf.NetworkTransport, URL: rawURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &bookshelf.NetworkError{Kind: bookshelf.NetworkBadURL, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &bookshelf.NetworkError{Kind: bookshelf.NetworkTransport, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBody))
		return nil, &bookshelf.NetworkError{Kind: bookshelf.NetworkStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, &bookshelf.NetworkError{Kind: bookshelf.NetworkTransport, URL: rawURL, Err: err}
	}
	if int64(len(body)) > f.maxBody {
		return nil, &bookshelf.NetworkError{
			Kind: bookshelf.NetworkTransport,
			URL:  rawURL,
			Err:  fmt.Errorf("response body exceeds %d bytes", f.maxBody),
		}
	}

	return body, nil
}
