package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/bookshelf"
	main "github.com/fwojciec/bookshelf/cmd/bookshelf"
	"github.com/fwojciec/bookshelf/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		helpOutput := stdout.String()
		for _, cmd := range allCommands {
			assert.Contains(t, helpOutput, cmd)
		}
		assert.Contains(t, helpOutput, "Usage:")
		assert.Contains(t, helpOutput, "Flags:")
	})

	t.Run("fails without command", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()

		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("searches and saves through the library database", func(t *testing.T) {
		t.Parallel()

		var gotQuery bookshelf.SearchQuery
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "nested", "library.db")
		m.Searcher = &mock.Searcher{
			FetchBookDataFn: func(_ context.Context, q bookshelf.SearchQuery) []*bookshelf.Book {
				gotQuery = q
				return []*bookshelf.Book{bookshelf.NewBook("Dune", "Frank Herbert")}
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"search", "--db", m.DBPath, "--title", "Dune", "--limit", "5", "--save"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, "Dune", gotQuery.Title)
		assert.Equal(t, 5, gotQuery.Limit)
		assert.Contains(t, stdout.String(), "## Dune")
		assert.Contains(t, stdout.String(), "Saved 1 of 1 books")

		// A fresh run reads the same file.
		listing := &bytes.Buffer{}
		err = main.NewMain().Run(context.Background(), []string{"list", "--db", m.DBPath}, listing, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, listing.String(), "Dune (Frank Herbert)")
	})

	t.Run("uses injected book service", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.BookService = &mock.BookService{
			FindBooksFn: func(context.Context, bookshelf.BookFilter) ([]*bookshelf.Book, error) {
				return []*bookshelf.Book{{ID: "b1", Title: "Emma", Author: "Jane Austen", Status: bookshelf.StatusRead}}, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "b1")
		assert.Nil(t, m.DB, "no database opened")
	})
}
