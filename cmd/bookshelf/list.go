package main

import (
	"fmt"

	"github.com/fwojciec/bookshelf"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := bookshelf.BookFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Status != "" {
		status := bookshelf.ReadingStatus(c.Status)
		if !status.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown status %q\n", c.Status)
			return bookshelf.Errorf(bookshelf.EINVALID, "unknown reading status %q", c.Status)
		}
		filter.Status = &status
	}

	books, err := deps.Books.FindBooks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No books found. Use 'bookshelf search --save' to add some.")
		return nil
	}

	for _, b := range books {
		author := b.Author
		if author == "" {
			author = "Unknown author"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %s (%s)\n", b.ID, b.Status, b.Title, author)
	}

	return nil
}
