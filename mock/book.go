package mock

import (
	"context"

	"github.com/fwojciec/bookshelf"
)

var _ bookshelf.BookService = (*BookService)(nil)

// BookService is a mock implementation of bookshelf.BookService.
type BookService struct {
	CreateBookFn   func(ctx context.Context, book *bookshelf.Book) error
	FindBookByIDFn func(ctx context.Context, id string) (*bookshelf.Book, error)
	FindBooksFn    func(ctx context.Context, filter bookshelf.BookFilter) ([]*bookshelf.Book, error)
	UpdateBookFn   func(ctx context.Context, id string, upd bookshelf.BookUpdate) (*bookshelf.Book, error)
	DeleteBookFn   func(ctx context.Context, id string) error
}

func (s *BookService) CreateBook(ctx context.Context, book *bookshelf.Book) error {
	return s.CreateBookFn(ctx, book)
}

func (s *BookService) FindBookByID(ctx context.Context, id string) (*bookshelf.Book, error) {
	return s.FindBookByIDFn(ctx, id)
}

func (s *BookService) FindBooks(ctx context.Context, filter bookshelf.BookFilter) ([]*bookshelf.Book, error) {
	return s.FindBooksFn(ctx, filter)
}

func (s *BookService) UpdateBook(ctx context.Context, id string, upd bookshelf.BookUpdate) (*bookshelf.Book, error) {
	return s.UpdateBookFn(ctx, id, upd)
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	return s.DeleteBookFn(ctx, id)
}
