package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/tropy"
	"github.com/fwojciec/tropy/crawl"
	"github.com/fwojciec/tropy/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Site      tropy.Site
	Tropes    tropy.TropeService
	Parser    tropy.Parser
	Converter tropy.Converter
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" help:"Database path (default: $TROPY_DB or ~/.tropy/tropy.db)"`
	BaseURL string        `name:"base-url" env:"TROPY_BASE_URL" default:"http://tvtropes.org" help:"Scheme and host of the site to crawl"`
	Timeout time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Rate    float64       `default:"1" help:"Requests per second per domain (0 disables limiting)"`
	Retries int           `default:"0" help:"Retries for failed fetches, with exponential backoff"`
	Browser bool          `help:"Fetch pages with a headless Chrome browser"`
	Verbose bool          `short:"v" help:"Log debug output"`

	Discover DiscoverCmd `cmd:"" help:"Collect trope references from list pages"`
	Resolve  ResolveCmd  `cmd:"" help:"Fetch the pages of tropes without content"`
	Show     ShowCmd     `cmd:"" help:"Show a stored trope"`
	IDs      IDsCmd      `cmd:"" name:"ids" help:"List all stored trope IDs"`
	Missing  MissingCmd  `cmd:"" help:"List URLs of tropes without content"`
	Export   ExportCmd   `cmd:"" help:"Write resolved tropes as markdown files"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URLs     []string `arg:"" optional:"" name:"url" help:"List pages to start from (default: built-in seed pages)"`
	Depth    int      `short:"d" default:"0" help:"Levels of linked trope pages to follow"`
	MaxPages int      `name:"max-pages" default:"0" help:"Stop after visiting this many pages (0 means no limit)"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Concurrency int `short:"c" default:"10" help:"Concurrent fetch limit"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL      string `arg:"" help:"Trope page URL"`
	Markdown bool   `short:"m" help:"Print the page body as markdown"`
}

// IDsCmd is the "ids" subcommand.
type IDsCmd struct{}

// MissingCmd is the "missing" subcommand.
type MissingCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Output directory"`
	Type string `help:"Only export tropes of this type"`
}
