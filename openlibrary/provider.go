// Package openlibrary implements bookshelf.BookProvider for Open Library.
// ISBN lookups use the bibliographic-keys API; free-text lookups use the
// search API plus one work-detail request per result for its description.
package openlibrary

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/backoff"
	"golang.org/x/sync/errgroup"
)

// Name identifies this catalog in logs and Book.Source.
const Name = "openlibrary"

// DefaultBaseURL is the Open Library host.
const DefaultBaseURL = "https://openlibrary.org"

// MaxDescribedResults caps how many search results are mapped, since each
// one costs an extra work-detail request.
const MaxDescribedResults = 10

// searchFields are requested explicitly; the search API omits most of
// them by default.
const searchFields = "key,title,subtitle,author_name,first_publish_year,publisher,subject,isbn,cover_i,number_of_pages_median,language"

// Ensure Provider implements bookshelf.BookProvider at compile time.
var _ bookshelf.BookProvider = (*Provider)(nil)

// Provider queries Open Library. No credential is needed.
type Provider struct {
	BaseURL   string
	Fetcher   bookshelf.Fetcher
	Sanitizer bookshelf.Sanitizer

	// Policy overrides backoff.DefaultPolicy.
	Policy backoff.Policy
}

// NewProvider creates a Provider talking to DefaultBaseURL.
func NewProvider(fetcher bookshelf.Fetcher, sanitizer bookshelf.Sanitizer) *Provider {
	return &Provider{
		BaseURL:   DefaultBaseURL,
		Fetcher:   fetcher,
		Sanitizer: sanitizer,
	}
}

// Name returns "openlibrary".
func (p *Provider) Name() string {
	return Name
}

// FetchBooks looks the query up by ISBN when one is given and by title
// and author otherwise.
func (p *Provider) FetchBooks(ctx context.Context, query bookshelf.SearchQuery, retries int) ([]*bookshelf.Book, error) {
	q := query.Normalize()
	switch {
	case q.ISBN != "":
		return p.fetchByISBN(ctx, q.ISBN, retries)
	case q.HasText():
		return p.search(ctx, q, retries)
	}
	return nil, p.fail(bookshelf.ProviderInvalidURL, errors.New("no ISBN, title or author to query"))
}

func (p *Provider) fetchByISBN(ctx context.Context, isbn string, retries int) ([]*bookshelf.Book, error) {
	isbn = strings.NewReplacer("-", "", " ", "").Replace(isbn)
	bibkey := "ISBN:" + isbn

	u, err := p.endpoint("/api/books", url.Values{
		"bibkeys": {bibkey},
		"format":  {"json"},
		"jscmd":   {"data"},
	})
	if err != nil {
		return nil, p.fail(bookshelf.ProviderInvalidURL, err)
	}

	records, err := backoff.FetchWithPolicy(ctx, p.Fetcher, u, retries, parseBibRecords, p.policy())
	if err != nil {
		return nil, p.classify(err)
	}

	record, ok := records[bibkey]
	if !ok {
		return []*bookshelf.Book{}, nil
	}
	b := p.bibRecordToBook(record, isbn)
	if b == nil {
		return []*bookshelf.Book{}, nil
	}
	return []*bookshelf.Book{b}, nil
}

func (p *Provider) search(ctx context.Context, q bookshelf.SearchQuery, retries int) ([]*bookshelf.Book, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(max(q.Limit, 1))},
		"page":   {"1"},
		"fields": {searchFields},
	}
	if q.Title != "" {
		params.Set("title", q.Title)
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}

	u, err := p.endpoint("/search.json", params)
	if err != nil {
		return nil, p.fail(bookshelf.ProviderInvalidURL, err)
	}

	resp, err := backoff.FetchWithPolicy(ctx, p.Fetcher, u, retries, parseSearch, p.policy())
	if err != nil {
		return nil, p.classify(err)
	}

	docs := resp.Docs
	if n := min(MaxDescribedResults, max(q.Limit, 1)); len(docs) > n {
		docs = docs[:n]
	}

	descriptions, err := p.fetchDescriptions(ctx, docs, retries)
	if err != nil {
		return nil, p.fail(bookshelf.ProviderAPI, err)
	}

	books := make([]*bookshelf.Book, 0, len(docs))
	for i, doc := range docs {
		if b := p.searchDocToBook(doc, descriptions[i]); b != nil {
			books = append(books, b)
		}
	}
	return books, nil
}

// fetchDescriptions requests every doc's work record concurrently. Each
// goroutine writes only its own slot; a failed request leaves it empty.
// The only error returned is the context's, once it is done.
func (p *Provider) fetchDescriptions(ctx context.Context, docs []searchDoc, retries int) ([]string, error) {
	descriptions := make([]string, len(docs))

	var g errgroup.Group
	for i, doc := range docs {
		if doc.Key == "" || strings.TrimSpace(doc.Title) == "" {
			continue
		}
		g.Go(func() error {
			u, err := p.endpoint(doc.Key+".json", nil)
			if err != nil {
				return nil
			}
			w, err := backoff.FetchWithPolicy(ctx, p.Fetcher, u, retries, parseWork, p.policy())
			if err != nil {
				return ctx.Err()
			}
			descriptions[i] = w.Description.String()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return descriptions, nil
}

func (p *Provider) endpoint(path string, params url.Values) (string, error) {
	base := p.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("base URL must be absolute")
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

func (p *Provider) policy() backoff.Policy {
	if p.Policy == nil {
		return backoff.DefaultPolicy
	}
	return p.Policy
}

func (p *Provider) classify(err error) error {
	var netErr *bookshelf.NetworkError
	if errors.As(err, &netErr) {
		switch netErr.Kind {
		case bookshelf.NetworkParse:
			return p.fail(bookshelf.ProviderParsing, err)
		case bookshelf.NetworkBadURL:
			return p.fail(bookshelf.ProviderInvalidURL, err)
		}
	}
	return p.fail(bookshelf.ProviderAPI, err)
}

func (p *Provider) fail(kind bookshelf.ProviderErrorKind, err error) *bookshelf.ProviderError {
	return &bookshelf.ProviderError{Provider: Name, Kind: kind, Err: err}
}

func (p *Provider) sanitize(s string) string {
	if p.Sanitizer == nil {
		return strings.TrimSpace(s)
	}
	return p.Sanitizer.Sanitize(s)
}

func (p *Provider) searchDocToBook(doc searchDoc, description string) *bookshelf.Book {
	title := joinTitle(doc.Title, doc.Subtitle)
	if title == "" {
		return nil
	}

	b := bookshelf.NewBook(title, strings.Join(doc.AuthorName, ", "))
	b.Published = yearToDate(doc.FirstPublishYear)
	b.Publisher = first(doc.Publisher)
	b.Genre = first(doc.Subject)
	b.ISBN = preferISBN13(doc.ISBN)
	b.Description = p.sanitize(description)
	b.PageCount = doc.NumberOfPagesMedian
	b.Language = first(doc.Language)
	if doc.CoverID > 0 {
		b.CoverURL = coverURL(doc.CoverID)
	}
	b.Source = Name
	return b
}

func (p *Provider) bibRecordToBook(r bibRecord, isbn string) *bookshelf.Book {
	title := joinTitle(r.Title, r.Subtitle)
	if title == "" {
		return nil
	}

	authors := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	b := bookshelf.NewBook(title, strings.Join(authors, ", "))
	b.Published = parsePublishDate(r.PublishDate)
	if len(r.Publishers) > 0 {
		b.Publisher = strings.TrimSpace(r.Publishers[0].Name)
	}
	if len(r.Subjects) > 0 {
		b.Genre = strings.TrimSpace(r.Subjects[0].Name)
	}
	b.ISBN = isbn
	description := r.Notes.String()
	if description == "" && len(r.Excerpts) > 0 {
		description = r.Excerpts[0].Text
	}
	b.Description = p.sanitize(description)
	b.PageCount = r.NumberOfPages
	b.CoverURL = r.Cover.Large
	b.Source = Name
	return b
}

func joinTitle(title, subtitle string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if subtitle = strings.TrimSpace(subtitle); subtitle != "" {
		return title + ": " + subtitle
	}
	return title
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func preferISBN13(isbns []string) string {
	for _, isbn := range isbns {
		if len(isbn) == 13 {
			return isbn
		}
	}
	return first(isbns)
}

// yearToDate maps a first-publish year to January 1 of that year.
// Day and month are not available from the search API.
func yearToDate(year int) *time.Time {
	if year <= 0 {
		return nil
	}
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func coverURL(id int) string {
	return "https://covers.openlibrary.org/b/id/" + strconv.Itoa(id) + "-L.jpg"
}
