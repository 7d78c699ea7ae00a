package mock

import (
	"context"

	"github.com/fwojciec/bookshelf"
)

var _ bookshelf.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bookshelf.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}
