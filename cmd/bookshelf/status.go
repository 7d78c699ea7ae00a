package main

import (
	"fmt"

	"github.com/fwojciec/bookshelf"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status := bookshelf.ReadingStatus(c.Status)
	if !status.Valid() {
		fmt.Fprintf(deps.Stderr, "error: unknown status %q\n", c.Status)
		return bookshelf.Errorf(bookshelf.EINVALID, "unknown reading status %q", c.Status)
	}

	book, err := deps.Books.UpdateBook(deps.Ctx, c.ID, bookshelf.BookUpdate{Status: &status})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Marked %q as %s\n", book.Title, book.Status)
	return nil
}

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t != "" {
			tags = append(tags, t)
		}
	}

	book, err := deps.Books.UpdateBook(deps.Ctx, c.ID, bookshelf.BookUpdate{Tags: tags})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Tagged %q with %d tags\n", book.Title, len(book.Tags))
	return nil
}
