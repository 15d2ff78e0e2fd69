package main

import (
	"context"
	"io"

	"github.com/fwojciec/krpcdocs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service krpcdocs.DocService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the MCP server on stdio"`
	Search  SearchCmd  `cmd:"" help:"Search the documentation"`
	Page    PageCmd    `cmd:"" help:"Show the indexed text of a page"`
	Member  MemberCmd  `cmd:"" help:"Resolve an API member to its documentation anchor"`
	Reindex ReindexCmd `cmd:"" help:"Rebuild the documentation index"`

	Cache    string  `help:"Cache directory (default: user cache dir, or $KRPCDOCS_CACHE)"`
	Store    string  `default:"fs" enum:"fs,sqlite" help:"Snapshot store backend"`
	RPS      float64 `default:"2" help:"Crawl rate limit in requests per second"`
	MaxPages int     `default:"0" help:"Crawl page cap (0 uses the built-in default of 300)"`
	Verbose  bool    `short:"v" help:"Verbose logging to stderr"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Free-text search query"`
	Limit int    `short:"n" default:"5" help:"Maximum results (clamped to 1-20)"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	SlugOrURL string `arg:"" name:"page" help:"Page slug (e.g. python/api/space-center.html) or full URL"`
}

// MemberCmd is the "member" subcommand.
type MemberCmd struct {
	Service string `arg:"" help:"Service name, e.g. SpaceCenter"`
	Class   string `arg:"" help:"Class name, e.g. Vessel"`
	Member  string `arg:"" help:"Member name, e.g. flight"`
}

// ReindexCmd is the "reindex" subcommand.
type ReindexCmd struct {
	Force bool `short:"f" help:"Re-crawl even if the index is fresh"`
}
