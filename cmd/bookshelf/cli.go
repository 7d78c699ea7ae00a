package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Books    bookshelf.BookService
	Searcher bookshelf.Searcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"BOOKSHELF_DB" help:"Library database path (default ~/.bookshelf/bookshelf.db)"`
	Verbose bool   `short:"v" help:"Log every HTTP request"`

	Search SearchCmd `cmd:"" help:"Search Google Books and Open Library"`
	List   ListCmd   `cmd:"" help:"List saved books"`
	Show   ShowCmd   `cmd:"" help:"Show a saved book"`
	Status StatusCmd `cmd:"" help:"Set the reading status of a saved book"`
	Tag    TagCmd    `cmd:"" help:"Replace the tags of a saved book"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved book"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Title    string        `short:"t" help:"Title to search for"`
	Author   string        `short:"a" help:"Author to search for"`
	ISBN     string        `short:"i" name:"isbn" help:"ISBN-10 or ISBN-13"`
	Limit    int           `short:"n" default:"10" help:"Maximum number of results"`
	Retries  int           `default:"3" help:"Retries per catalog request"`
	Timeout  time.Duration `default:"10s" help:"HTTP request timeout"`
	RPS      float64       `name:"rps" default:"0" help:"Requests per second per host (0 disables limiting)"`
	Markdown bool          `short:"m" help:"Keep description formatting as Markdown"`
	Save     bool          `short:"s" help:"Save results to the library"`
	APIKey   string        `name:"api-key" env:"GOOGLE_BOOKS_API_KEY" help:"Google Books API key"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Status string `help:"Only books with this status (unread, reading, read)"`
	Limit  int    `short:"n" help:"Maximum number of books"`
	Offset int    `help:"Number of books to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Book ID"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	ID     string `arg:"" help:"Book ID"`
	Status string `arg:"" enum:"unread,reading,read" help:"New status (unread, reading, read)"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	ID   string   `arg:"" help:"Book ID"`
	Tags []string `arg:"" optional:"" help:"Tags to set; none clears them"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Book ID"`
	Force bool   `help:"Confirm deletion"`
}
