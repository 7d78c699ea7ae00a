package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ bookshelf.BookService = (*BookService)(nil)

const bookColumns = `id, title, author, published, publisher, genre, series, isbn,
	description, cover_url, page_count, language, source, status,
	quotes, notes, tags, created_at, updated_at`

// BookService implements bookshelf.BookService using SQLite.
type BookService struct {
	db *DB
}

// NewBookService creates a new BookService.
func NewBookService(db *DB) *BookService {
	return &BookService{db: db}
}

// CreateBook saves a book. Books are unique by identifier key.
func (s *BookService) CreateBook(ctx context.Context, book *bookshelf.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}
	if book.Status == "" {
		book.Status = bookshelf.StatusUnread
	}

	quotes, err := encodeList(book.Quotes)
	if err != nil {
		return err
	}
	notes, err := encodeList(book.Notes)
	if err != nil {
		return err
	}
	tags, err := encodeList(book.Tags)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (id, key_hash, title, author, published, publisher, genre, series, isbn,
			description, cover_url, page_count, language, source, status,
			quotes, notes, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, hashKey(book.IdentifierKey()), book.Title, book.Author, formatPublished(book.Published),
		book.Publisher, book.Genre, book.Series, book.ISBN, book.Description, book.CoverURL,
		book.PageCount, book.Language, book.Source, string(book.Status),
		quotes, notes, tags, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return bookshelf.Errorf(bookshelf.ECONFLICT, "book %q already saved", book.Title)
	}
	if err != nil {
		return err
	}

	book.ID = id
	book.CreatedAt = now
	book.UpdatedAt = now
	return nil
}

// FindBookByID retrieves a book by ID.
func (s *BookService) FindBookByID(ctx context.Context, id string) (*bookshelf.Book, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+bookColumns+" FROM books WHERE id = ?", id)
	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, bookshelf.Errorf(bookshelf.ENOTFOUND, "book not found")
	}
	return book, err
}

// FindBooks retrieves books matching the filter, most recently saved first.
func (s *BookService) FindBooks(ctx context.Context, filter bookshelf.BookFilter) ([]*bookshelf.Book, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + bookColumns + " FROM books WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ISBN != nil {
		query.WriteString(" AND isbn = ?")
		args = append(args, *filter.ISBN)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*bookshelf.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// UpdateBook changes the reading status and tags of a saved book.
// Nil fields are left unchanged.
func (s *BookService) UpdateBook(ctx context.Context, id string, upd bookshelf.BookUpdate) (*bookshelf.Book, error) {
	book, err := s.FindBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		book.Status = *upd.Status
	}
	if upd.Tags != nil {
		book.Tags = upd.Tags
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	tags, err := encodeList(book.Tags)
	if err != nil {
		return nil, err
	}
	book.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE books
		SET status = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`, string(book.Status), tags, book.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook permanently removes a book.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return bookshelf.Errorf(bookshelf.ENOTFOUND, "book not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*bookshelf.Book, error) {
	var book bookshelf.Book
	var published sql.NullString
	var status, quotes, notes, tags, createdAt, updatedAt string

	if err := row.Scan(&book.ID, &book.Title, &book.Author, &published, &book.Publisher,
		&book.Genre, &book.Series, &book.ISBN, &book.Description, &book.CoverURL,
		&book.PageCount, &book.Language, &book.Source, &status,
		&quotes, &notes, &tags, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	book.Status = bookshelf.ReadingStatus(status)

	var err error
	if published.Valid {
		t, err := parseRFC3339(published.String, "published")
		if err != nil {
			return nil, err
		}
		book.Published = &t
	}
	if book.Quotes, err = decodeList(quotes, "quotes"); err != nil {
		return nil, err
	}
	if book.Notes, err = decodeList(notes, "notes"); err != nil {
		return nil, err
	}
	if book.Tags, err = decodeList(tags, "tags"); err != nil {
		return nil, err
	}
	if book.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if book.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &book, nil
}
