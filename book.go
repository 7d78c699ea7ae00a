package bookshelf

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// ReadingStatus is the host application's reading state for a book.
type ReadingStatus string

// ReadingStatus constants.
const (
	StatusUnread  ReadingStatus = "unread"
	StatusReading ReadingStatus = "reading"
	StatusRead    ReadingStatus = "read"
)

// Valid reports whether s is a known status.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusRead:
		return true
	}
	return false
}

// Book is the canonical record every catalog provider normalizes into.
type Book struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Published   *time.Time    `json:"published,omitempty"`
	Publisher   string        `json:"publisher,omitempty"`
	Genre       string        `json:"genre,omitempty"`
	Series      string        `json:"series,omitempty"`
	ISBN        string        `json:"isbn,omitempty"`
	Description string        `json:"description,omitempty"`
	CoverURL    string        `json:"coverUrl,omitempty"`
	PageCount   int           `json:"pageCount,omitempty"`
	Language    string        `json:"language,omitempty"`
	Source      string        `json:"source,omitempty"`
	Status      ReadingStatus `json:"status"`
	Quotes      []string      `json:"quotes"`
	Notes       []string      `json:"notes"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt,omitzero"`
	UpdatedAt   time.Time     `json:"updatedAt,omitzero"`
}

// NewBook returns an unread book with empty annotation collections.
func NewBook(title, author string) *Book {
	return &Book{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Status: StatusUnread,
		Quotes: []string{},
		Notes:  []string{},
		Tags:   []string{},
	}
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return Errorf(EINVALID, "book title required")
	}
	if b.Status != "" && !b.Status.Valid() {
		return Errorf(EINVALID, "unknown reading status %q", b.Status)
	}
	return nil
}

// IdentifierKey returns the key used to recognize the same book across
// catalogs: the ISBN when present, otherwise the normalized title and
// author. It is empty when the book has no usable title.
func (b *Book) IdentifierKey() string {
	title := normalizeKey(b.Title)
	if title == "" {
		return ""
	}
	if isbn := strings.TrimSpace(b.ISBN); isbn != "" {
		return isbn
	}
	if author := normalizeKey(b.Author); author != "" {
		return title + "|" + author
	}
	return title
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CompletenessScore rates how much metadata a record carries.
// Longer descriptions earn up to three extra points.
func (b *Book) CompletenessScore() int {
	var score int
	for _, s := range []string{b.Title, b.Author, b.Publisher, b.Genre, b.Series, b.ISBN} {
		if s != "" {
			score++
		}
	}
	if b.Published != nil {
		score++
	}
	if b.Description != "" {
		score += 2 + min(3, utf8.RuneCountInString(b.Description)/100)
	}
	return score
}

// BookService represents the host's local library of saved books.
type BookService interface {
	// CreateBook saves a book and assigns its ID and timestamps.
	// Returns ECONFLICT if a book with the same identifier key exists.
	CreateBook(ctx context.Context, book *Book) error

	// FindBookByID retrieves a book by ID.
	// Returns ENOTFOUND if book does not exist.
	FindBookByID(ctx context.Context, id string) (*Book, error)

	// FindBooks retrieves books matching the filter.
	FindBooks(ctx context.Context, filter BookFilter) ([]*Book, error)

	// UpdateBook updates the host-owned fields of a book.
	// Returns ENOTFOUND if book does not exist.
	UpdateBook(ctx context.Context, id string, upd BookUpdate) (*Book, error)

	// DeleteBook permanently removes a book.
	// Returns ENOTFOUND if book does not exist.
	DeleteBook(ctx context.Context, id string) error
}

// BookFilter represents a filter for FindBooks.
type BookFilter struct {
	ID     *string        `json:"id"`
	ISBN   *string        `json:"isbn"`
	Status *ReadingStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BookUpdate represents fields that can be updated on a saved book.
type BookUpdate struct {
	Status *ReadingStatus `json:"status"`
	Tags   []string       `json:"tags"`
}
