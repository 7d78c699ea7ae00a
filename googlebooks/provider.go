// Package googlebooks implements bookshelf.BookProvider for the Google Books API.
package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/backoff"
)

// Name identifies this catalog in logs and Book.Source.
const Name = "googlebooks"

// DefaultBaseURL is the Google APIs host.
const DefaultBaseURL = "https://www.googleapis.com"

// maxResultsLimit is the largest page the volumes endpoint accepts.
const maxResultsLimit = 40

// Ensure Provider implements bookshelf.BookProvider at compile time.
var _ bookshelf.BookProvider = (*Provider)(nil)

// Provider searches the Google Books volumes endpoint. It requires an API key.
type Provider struct {
	APIKey    string
	BaseURL   string
	Fetcher   bookshelf.Fetcher
	Sanitizer bookshelf.Sanitizer

	// Policy overrides backoff.DefaultPolicy.
	Policy backoff.Policy
}

// NewProvider creates a Provider talking to DefaultBaseURL.
func NewProvider(apiKey string, fetcher bookshelf.Fetcher, sanitizer bookshelf.Sanitizer) *Provider {
	return &Provider{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		Fetcher:   fetcher,
		Sanitizer: sanitizer,
	}
}

// Name returns "googlebooks".
func (p *Provider) Name() string {
	return Name
}

// FetchBooks searches volumes matching the query's title, author and ISBN.
func (p *Provider) FetchBooks(ctx context.Context, query bookshelf.SearchQuery, retries int) ([]*bookshelf.Book, error) {
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, p.fail(bookshelf.ProviderUnauthorized, errors.New("no API key configured"))
	}

	q := query.Normalize()
	clauses := BuildQuery(q)
	if clauses == "" {
		return nil, p.fail(bookshelf.ProviderEmptyQuery, nil)
	}

	u, err := p.volumesURL(clauses, q.Limit)
	if err != nil {
		return nil, p.fail(bookshelf.ProviderInvalidURL, err)
	}

	policy := p.Policy
	if policy == nil {
		policy = backoff.DefaultPolicy
	}
	resp, err := backoff.FetchWithPolicy(ctx, p.Fetcher, u, retries, parseVolumes, policy)
	if err != nil {
		return nil, p.classify(err)
	}

	books := make([]*bookshelf.Book, 0, len(resp.Items))
	for _, item := range resp.Items {
		if b := p.toBook(item.VolumeInfo, q.ISBN); b != nil {
			books = append(books, b)
		}
	}
	return books, nil
}

// BuildQuery returns the q parameter: intitle:, inauthor: and isbn:
// clauses for each non-empty term. Clauses are space separated, which
// encodes to "+" on the wire.
func BuildQuery(q bookshelf.SearchQuery) string {
	var clauses []string
	if q.Title != "" {
		clauses = append(clauses, "intitle:"+q.Title)
	}
	if q.Author != "" {
		clauses = append(clauses, "inauthor:"+q.Author)
	}
	if isbn := cleanISBN(q.ISBN); isbn != "" {
		clauses = append(clauses, "isbn:"+isbn)
	}
	return strings.Join(clauses, " ")
}

func (p *Provider) volumesURL(clauses string, limit int) (string, error) {
	base := p.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(base, "/") + "/books/v1/volumes")
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("base URL must be absolute")
	}

	v := url.Values{}
	v.Set("q", clauses)
	v.Set("maxResults", strconv.Itoa(min(max(limit, 1), maxResultsLimit)))
	v.Set("projection", "full")
	v.Set("key", p.APIKey)
	u.RawQuery = v.Encode()
	return u.String(), nil
}

// classify maps a failed fetch onto a provider error. A rejected key
// surfaces as unauthorized rather than a generic API failure.
func (p *Provider) classify(err error) error {
	var netErr *bookshelf.NetworkError
	if errors.As(err, &netErr) {
		switch {
		case netErr.Kind == bookshelf.NetworkStatus &&
			(netErr.StatusCode == http.StatusUnauthorized || netErr.StatusCode == http.StatusForbidden):
			return p.fail(bookshelf.ProviderUnauthorized, err)
		case netErr.Kind == bookshelf.NetworkParse:
			return p.fail(bookshelf.ProviderParsing, err)
		case netErr.Kind == bookshelf.NetworkBadURL:
			return p.fail(bookshelf.ProviderInvalidURL, err)
		}
	}
	return p.fail(bookshelf.ProviderAPI, err)
}

func (p *Provider) fail(kind bookshelf.ProviderErrorKind, err error) *bookshelf.ProviderError {
	return &bookshelf.ProviderError{Provider: Name, Kind: kind, Err: err}
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	ImageLinks          struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

func parseVolumes(body []byte) (*volumesResponse, error) {
	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// toBook maps a volume into a canonical book. Volumes without a title
// return nil.
func (p *Provider) toBook(info volumeInfo, inputISBN string) *bookshelf.Book {
	title := strings.TrimSpace(info.Title)
	if title == "" {
		return nil
	}
	if sub := strings.TrimSpace(info.Subtitle); sub != "" {
		title += ": " + sub
	}

	b := bookshelf.NewBook(title, strings.Join(info.Authors, ", "))
	b.Published = parsePublishedDate(info.PublishedDate)
	b.Publisher = strings.TrimSpace(info.Publisher)
	if len(info.Categories) > 0 {
		b.Genre = strings.TrimSpace(info.Categories[0])
	}
	b.ISBN = preferredISBN(info.IndustryIdentifiers, inputISBN)
	b.Description = info.Description
	if p.Sanitizer != nil {
		b.Description = p.Sanitizer.Sanitize(info.Description)
	}
	b.PageCount = info.PageCount
	b.Language = info.Language
	b.CoverURL = strings.Replace(info.ImageLinks.Thumbnail, "http://", "https://", 1)
	b.Source = Name
	return b
}

// preferredISBN picks the identifier matching the caller's ISBN, else the
// ISBN-13, else the ISBN-10. Hyphens are ignored when comparing.
func preferredISBN(ids []industryIdentifier, inputISBN string) string {
	if want := cleanISBN(inputISBN); want != "" {
		for _, id := range ids {
			if cleanISBN(id.Identifier) == want {
				return id.Identifier
			}
		}
	}
	for _, typ := range []string{"ISBN_13", "ISBN_10"} {
		for _, id := range ids {
			if id.Type == typ && id.Identifier != "" {
				return id.Identifier
			}
		}
	}
	return ""
}

func cleanISBN(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "-", ""), " ", "")
}

// parsePublishedDate accepts the precisions Google reports: year,
// year-month and full date.
func parsePublishedDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
