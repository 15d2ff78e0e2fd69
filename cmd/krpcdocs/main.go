package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/krpcdocs"
	"github.com/fwojciec/krpcdocs/crawl"
	"github.com/fwojciec/krpcdocs/fs"
	"github.com/fwojciec/krpcdocs/goquery"
	krpchttp "github.com/fwojciec/krpcdocs/http"
	"github.com/fwojciec/krpcdocs/index"
	krpcslog "github.com/fwojciec/krpcdocs/slog"
	"github.com/fwojciec/krpcdocs/sqlite"
)

// version is the reported server version.
const version = "0.1.0"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache directory. Set before calling Run().
	CacheDir string

	// SQLite database, opened only with --store=sqlite.
	DB *sqlite.DB

	// Service answers all queries. Pre-set in end-to-end tests; otherwise
	// wired from the cache directory and a live crawler.
	Service krpcdocs.DocService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CacheDir: defaultCacheDir(),
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
		kong.Name("krpcdocs"),
		kong.Description("Search and browse the kRPC Python documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'krpcdocs --help' to see available commands")
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

	// All logging goes to stderr: with the serve command, stdout belongs to
	// the MCP transport.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.Cache != "" {
		m.CacheDir = cli.Cache
	}

	if m.Service == nil {
		store, err := m.openStore(cli.Store)
		if err != nil {
			return err
		}
		defer m.Close()

		fetcher := krpcdocs.Fetcher(krpchttp.NewFetcher())
		fetcher = krpcslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		extractor := goquery.NewExtractor()
		crawler := &crawl.Crawler{
			Fetcher:   fetcher,
			Extractor: extractor,
			Links:     extractor,
			Scope:     krpcdocs.DefaultScope(),
			Limiter:   crawl.NewLimiter(cli.RPS),
			MaxPages:  cli.MaxPages,
			Logger:    logger,
		}

		m.Service = krpcslog.NewLoggingDocService(index.NewService(crawler, store), logger)
	}
	deps.Service = m.Service

	return kongCtx.Run(deps)
}

// openStore builds the snapshot store selected by --store.
func (m *Main) openStore(kind string) (krpcdocs.SnapshotStore, error) {
	if err := os.MkdirAll(m.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %q: %w", m.CacheDir, err)
	}

	switch kind {
	case "sqlite":
		m.DB = sqlite.NewDB(filepath.Join(m.CacheDir, "index.db"))
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database in %q: %w", m.CacheDir, err)
		}
		return sqlite.NewSnapshotStore(m.DB), nil
	default:
		return fs.NewSnapshotStore(filepath.Join(m.CacheDir, "index")), nil
	}
}

func defaultCacheDir() string {
	if path := os.Getenv("KRPCDOCS_CACHE"); path != "" {
		return path
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return ".krpcdocs"
	}
	return filepath.Join(base, "krpcdocs")
}
