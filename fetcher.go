package bookshelf

import "context"

// Fetcher performs a single HTTP GET and returns the raw response body.
// Implementations report failures as *NetworkError and never retry;
// retrying is layered on top (see the backoff package).
type Fetcher interface {
	// Fetch requests the URL and returns the body of a 2xx response.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
