package googlebooks_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/backoff"
	"github.com/fwojciec/bookshelf/goquery"
	"github.com/fwojciec/bookshelf/googlebooks"
	bookhttp "github.com/fwojciec/bookshelf/http"
	"github.com/fwojciec/bookshelf/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duneVolumes = `{
  "totalItems": 3,
  "items": [
    {
      "id": "B1hSG45JCX4C",
      "volumeInfo": {
        "title": "Dune",
        "subtitle": "Deluxe Edition",
        "authors": ["Frank Herbert", "Brian Herbert"],
        "publisher": "Penguin",
        "publishedDate": "2019-10-01",
        "description": "<p>Set on the <b>desert</b> planet Arrakis.</p>",
        "industryIdentifiers": [
          {"type": "ISBN_10", "identifier": "0441172717"},
          {"type": "ISBN_13", "identifier": "9780441172719"}
        ],
        "pageCount": 896,
        "categories": ["Fiction", "Science Fiction"],
        "language": "en",
        "imageLinks": {"thumbnail": "http://books.google.com/books/content?id=B1hSG45JCX4C"}
      }
    },
    {
      "id": "noTitle",
      "volumeInfo": {"authors": ["Nobody"]}
    },
    {
      "id": "old",
      "volumeInfo": {
        "title": "Dune Messiah",
        "publishedDate": "1969",
        "industryIdentifiers": [{"type": "OTHER", "identifier": "UOM:39015"}, {"type": "ISBN_10", "identifier": "0399128999"}]
      }
    }
  ]
}`

func newProvider(serverURL string) *googlebooks.Provider {
	p := googlebooks.NewProvider("test-key", bookhttp.NewFetcher(), goquery.NewSanitizer())
	p.BaseURL = serverURL
	p.Policy = backoff.NoDelay
	return p
}

func TestProvider_FetchBooks(t *testing.T) {
	t.Parallel()

	t.Run("builds volumes request", func(t *testing.T) {
		t.Parallel()

		requests := make(chan *http.Request, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests <- r
			_, _ = w.Write([]byte(`{"totalItems":0}`))
		}))
		defer server.Close()

		_, err := newProvider(server.URL).FetchBooks(context.Background(),
			bookshelf.SearchQuery{Title: "Dune", Author: "Herbert", ISBN: "978-0441172719", Limit: 5}, 0)
		require.NoError(t, err)

		r := <-requests
		assert.Equal(t, "/books/v1/volumes", r.URL.Path)
		assert.Equal(t, "intitle:Dune inauthor:Herbert isbn:9780441172719", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "full", r.URL.Query().Get("projection"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Contains(t, r.URL.RawQuery, "q=intitle%3ADune+inauthor%3AHerbert+isbn%3A9780441172719")
	})

	t.Run("clamps maxResults to API limit", func(t *testing.T) {
		t.Parallel()

		requests := make(chan *http.Request, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests <- r
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 100}, 0)
		require.NoError(t, err)

		assert.Equal(t, "40", (<-requests).URL.Query().Get("maxResults"))
	})

	t.Run("maps volumes into books", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(duneVolumes))
		}))
		defer server.Close()

		books, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 10}, 0)
		require.NoError(t, err)
		require.Len(t, books, 2, "volume without title is dropped")

		dune := books[0]
		assert.Equal(t, "Dune: Deluxe Edition", dune.Title)
		assert.Equal(t, "Frank Herbert, Brian Herbert", dune.Author)
		assert.Equal(t, "Penguin", dune.Publisher)
		assert.Equal(t, "Fiction", dune.Genre)
		assert.Equal(t, "9780441172719", dune.ISBN, "ISBN-13 preferred")
		assert.Equal(t, "Set on the desert planet Arrakis.", dune.Description)
		require.NotNil(t, dune.Published)
		assert.Equal(t, time.Date(2019, time.October, 1, 0, 0, 0, 0, time.UTC), *dune.Published)
		assert.Equal(t, 896, dune.PageCount)
		assert.Equal(t, "https://books.google.com/books/content?id=B1hSG45JCX4C", dune.CoverURL)
		assert.Equal(t, bookshelf.StatusUnread, dune.Status)
		assert.Equal(t, googlebooks.Name, dune.Source)
		assert.NotNil(t, dune.Tags)

		messiah := books[1]
		assert.Equal(t, "0399128999", messiah.ISBN, "falls back to ISBN-10")
		assert.Empty(t, messiah.Author)
		require.NotNil(t, messiah.Published)
		assert.Equal(t, 1969, messiah.Published.Year())
	})

	t.Run("prefers identifier matching input ISBN", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(duneVolumes))
		}))
		defer server.Close()

		books, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{ISBN: "0-441-17271-7", Limit: 10}, 0)
		require.NoError(t, err)
		require.NotEmpty(t, books)

		assert.Equal(t, "0441172717", books[0].ISBN)
	})

	t.Run("fails unauthorized without API key and sends nothing", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{FetchFn: func(context.Context, string) ([]byte, error) {
			t.Fatal("no request expected")
			return nil, nil
		}}
		p := googlebooks.NewProvider("", fetcher, nil)

		_, err := p.FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 5}, 3)

		require.Error(t, err)
		assert.True(t, bookshelf.IsProviderError(err, bookshelf.ProviderUnauthorized))
	})

	t.Run("fails with empty query", func(t *testing.T) {
		t.Parallel()

		p := googlebooks.NewProvider("key", &mock.Fetcher{}, nil)

		_, err := p.FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "  ", Limit: 5}, 3)

		assert.True(t, bookshelf.IsProviderError(err, bookshelf.ProviderEmptyQuery))
	})

	t.Run("fails with invalid base URL", func(t *testing.T) {
		t.Parallel()

		p := googlebooks.NewProvider("key", &mock.Fetcher{}, nil)
		p.BaseURL = "not a url"

		_, err := p.FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 5}, 3)

		assert.True(t, bookshelf.IsProviderError(err, bookshelf.ProviderInvalidURL))
	})

	t.Run("maps rejected key to unauthorized after retries", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 5}, 2)

		assert.True(t, bookshelf.IsProviderError(err, bookshelf.ProviderUnauthorized))
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("wraps server failure as API error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 5}, 1)

		require.True(t, bookshelf.IsProviderError(err, bookshelf.ProviderAPI))
		var netErr *bookshelf.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	})

	t.Run("reports undecodable body as parsing error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		defer server.Close()

		_, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 5}, 1)

		assert.True(t, bookshelf.IsProviderError(err, bookshelf.ProviderParsing))
	})

	t.Run("recovers from transient failure", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(duneVolumes))
		}))
		defer server.Close()

		books, err := newProvider(server.URL).FetchBooks(context.Background(), bookshelf.SearchQuery{Title: "Dune", Limit: 5}, 3)

		require.NoError(t, err)
		assert.Len(t, books, 2)
	})
}

// Compile-time verification that Provider implements bookshelf.BookProvider
var _ bookshelf.BookProvider = (*googlebooks.Provider)(nil)
