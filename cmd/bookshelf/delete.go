package main

import (
	"fmt"

	"github.com/fwojciec/bookshelf"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return bookshelf.Errorf(bookshelf.EINVALID, "use --force to confirm deletion")
	}

	book, err := deps.Books.FindBookByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'bookshelf list' to see saved books.\n", bookshelf.ErrorMessage(err))
		return err
	}

	if err := deps.Books.DeleteBook(deps.Ctx, book.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookshelf.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %q\n", book.Title)
	return nil
}
