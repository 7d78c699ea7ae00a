package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookshelf"
	"github.com/fwojciec/bookshelf/goquery"
	"github.com/fwojciec/bookshelf/googlebooks"
	"github.com/fwojciec/bookshelf/htmltomarkdown"
	bookhttp "github.com/fwojciec/bookshelf/http"
	"github.com/fwojciec/bookshelf/levenshtein"
	"github.com/fwojciec/bookshelf/openlibrary"
	"github.com/fwojciec/bookshelf/search"
	bookslog "github.com/fwojciec/bookshelf/slog"
	"github.com/fwojciec/bookshelf/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db and BOOKSHELF_DB override it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil fields are built by Run.
	BookService bookshelf.BookService
	Searcher    bookshelf.Searcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookshelf"),
		kong.Description("Search online book catalogs and keep a local reading list."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookshelf --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	if m.BookService == nil {
		if err := ensureDir(m.DBPath); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BOOKSHELF_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		m.BookService = sqlite.NewBookService(m.DB)
	}
	deps.DB = m.DB
	deps.Books = m.BookService

	if kongCtx.Command() == "search" {
		if m.Searcher == nil {
			if cli.Search.APIKey == "" {
				fmt.Fprintln(stderr, "Hint: Set GOOGLE_BOOKS_API_KEY to include Google Books results")
			}
			m.Searcher = newSearcher(&cli.Search, deps.Logger)
		}
		deps.Searcher = m.Searcher
	}

	return kongCtx.Run(deps)
}

// newSearcher wires both catalogs behind a shared fetcher.
func newSearcher(c *SearchCmd, logger *slog.Logger) bookshelf.Searcher {
	opts := []bookhttp.Option{bookhttp.WithTimeout(c.Timeout)}
	if c.RPS > 0 {
		opts = append(opts, bookhttp.WithHostLimiter(bookhttp.NewHostLimiter(c.RPS)))
	}
	fetcher := bookslog.NewLoggingFetcher(bookhttp.NewFetcher(opts...), logger)

	var sanitizer bookshelf.Sanitizer = goquery.NewSanitizer()
	if c.Markdown {
		sanitizer = htmltomarkdown.NewSanitizer()
	}

	// The aggregator reads zero as "use the default".
	retries := c.Retries
	if retries == 0 {
		retries = -1
	}

	aggregator := &search.Aggregator{
		Providers: []bookshelf.BookProvider{
			bookslog.NewLoggingProvider(googlebooks.NewProvider(c.APIKey, fetcher, sanitizer), logger),
			bookslog.NewLoggingProvider(openlibrary.NewProvider(fetcher, sanitizer), logger),
		},
		Matcher: levenshtein.NewMatcher(),
		Retries: retries,
	}
	return bookslog.NewLoggingSearcher(aggregator, logger)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookshelf.db"
	}
	return filepath.Join(home, ".bookshelf", "bookshelf.db")
}

func ensureDir(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dbPath), 0755)
}
