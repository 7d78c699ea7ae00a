package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/bookshelf"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	book, err := deps.Books.FindBookByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, bookshelf.FormatBooks([]*bookshelf.Book{book}))
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "Status: %s\n", book.Status)
	if len(book.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "Tags: %s\n", strings.Join(book.Tags, ", "))
	}
	for _, q := range book.Quotes {
		fmt.Fprintf(deps.Stdout, "> %s\n", q)
	}
	for _, n := range book.Notes {
		fmt.Fprintf(deps.Stdout, "Note: %s\n", n)
	}
	fmt.Fprintf(deps.Stdout, "Saved: %s\n", book.CreatedAt.Format("2006-01-02"))

	return nil
}
