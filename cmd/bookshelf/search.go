package main

import (
	"fmt"

	"github.com/fwojciec/bookshelf"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := bookshelf.SearchQuery{
		Title:  c.Title,
		Author: c.Author,
		ISBN:   c.ISBN,
		Limit:  c.Limit,
	}
	if query.IsEmpty() {
		fmt.Fprintln(deps.Stderr, "error: provide --title, --author or --isbn")
		return bookshelf.Errorf(bookshelf.EINVALID, "no search terms given")
	}

	books := deps.Searcher.FetchBookData(deps.Ctx, query)
	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No books found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, bookshelf.FormatBooks(books))

	if !c.Save {
		return nil
	}

	fmt.Fprintln(deps.Stdout)
	var saved int
	for _, b := range books {
		err := deps.Books.CreateBook(deps.Ctx, b)
		switch {
		case bookshelf.ErrorCode(err) == bookshelf.ECONFLICT:
			fmt.Fprintf(deps.Stdout, "Already saved: %s\n", b.Title)
		case err != nil:
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
			return err
		default:
			saved++
			fmt.Fprintf(deps.Stdout, "Saved %s  %s\n", b.ID, b.Title)
		}
	}
	fmt.Fprintf(deps.Stdout, "Saved %d of %d books\n", saved, len(books))

	return nil
}
