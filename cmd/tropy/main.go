package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/crawl"
	"github.com/fwojciec/tropy/goquery"
	"github.com/fwojciec/tropy/htmltomarkdown"
	tropyhttp "github.com/fwojciec/tropy/http"
	"github.com/fwojciec/tropy/rod"
	tropyslog "github.com/fwojciec/tropy/slog"
	"github.com/fwojciec/tropy/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	TropeService tropy.TropeService
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
		kong.Name("tropy"),
		kong.Description("Crawl TV Tropes pages into a local trope cache"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tropy --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)
	site := tropy.Site{BaseURL: strings.TrimSuffix(cli.BaseURL, "/")}

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TROPY_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.TropeService = tropyslog.NewLoggingTropeService(sqlite.NewTropeService(m.DB, logger), logger)
	deps.Logger = logger
	deps.DB = m.DB
	deps.Site = site
	deps.Tropes = m.TropeService
	deps.Parser = goquery.NewParser()
	deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(site.BaseURL))

	if cmd == "discover" || cmd == "resolve" {
		var fetcher tropy.Fetcher = tropyhttp.NewFetcher(tropyhttp.WithTimeout(cli.Timeout))
		if cli.Browser {
			browser, err := rod.NewFetcher(rod.WithTimeout(cli.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		}
		fetcher = tropyslog.NewLoggingFetcher(fetcher, logger)
		if cli.Retries > 0 {
			fetcher = crawl.NewRetryFetcher(fetcher, crawl.RetryDelays(cli.Retries), logger)
		}
		defer fetcher.Close()

		extractor := crawl.NewExtractor(site, fetcher, deps.Parser, logger)

		deps.Crawler = &crawl.Crawler{
			Extractor:   tropyslog.NewLoggingExtractor(extractor, logger),
			Tropes:      m.TropeService,
			RateLimiter: crawl.NewHostLimiter(cli.Rate),
			Logger:      logger,
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("TROPY_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tropy.db"
	}
	dir := filepath.Join(home, ".tropy")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tropy.db")
}
