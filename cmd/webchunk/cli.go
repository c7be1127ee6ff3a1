package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webchunk"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  webchunk.Config
	Logger  *slog.Logger
	Service webchunk.ScrapeService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL       string        `name:"base-url" env:"WEBCHUNK_BASE_URL" default:"http://localhost:8000" help:"Extraction service base URL"`
	Timeout       time.Duration `env:"WEBCHUNK_TIMEOUT" default:"30s" help:"Timeout for a single attempt"`
	RetryAttempts int           `name:"retry-attempts" env:"WEBCHUNK_RETRY_ATTEMPTS" default:"3" help:"Retries after the first attempt"`
	RetryDelay    time.Duration `name:"retry-delay" env:"WEBCHUNK_RETRY_DELAY" default:"1s" help:"Base delay between attempts, multiplied by the attempt number"`
	CacheTTL      time.Duration `name:"cache-ttl" env:"WEBCHUNK_CACHE_TTL" default:"5m" help:"Lifetime of cached responses"`
	CacheMaxSize  int           `name:"cache-max-size" env:"WEBCHUNK_CACHE_MAX_SIZE" default:"100" help:"Maximum number of cached responses"`
	ScrapePath    string        `name:"scrape-path" env:"WEBCHUNK_SCRAPE_PATH" default:"/api/scrape" help:"Live scrape endpoint path"`
	MockPath      string        `name:"mock-path" env:"WEBCHUNK_MOCK_PATH" default:"/api/mock/scrape" help:"Mock scrape endpoint path"`

	Local     bool   `help:"Serve the mock endpoint in-process instead of calling the service"`
	Render    bool   `help:"With --local, render pages in headless Chrome"`
	Extractor string `enum:"trafilatura,readability" default:"trafilatura" help:"With --local, fallback content extractor (${enum})"`
	Verbose   bool   `short:"v" help:"Log requests to stderr"`

	Scrape      ScrapeCmd      `cmd:"" help:"Scrape one or more URLs"`
	Interactive InteractiveCmd `cmd:"" help:"Read 'url [query]' lines from stdin and scrape each"`
	Config      ConfigCmd      `cmd:"" help:"Print the effective configuration"`
}

// ClientConfig returns the client configuration selected by the flags.
func (c *CLI) ClientConfig() webchunk.Config {
	return webchunk.Config{
		BaseURL:       c.BaseURL,
		Timeout:       c.Timeout,
		RetryAttempts: c.RetryAttempts,
		RetryDelay:    c.RetryDelay,
		CacheTTL:      c.CacheTTL,
		CacheMaxSize:  c.CacheMaxSize,
		Endpoints: webchunk.Endpoints{
			Scrape:     c.ScrapePath,
			MockScrape: c.MockPath,
		},
	}
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Query       string   `short:"q" help:"Rank chunks by relevance to this query"`
	Mock        bool     `help:"Use the mock endpoint"`
	View        string   `enum:"cards,table" default:"cards" help:"Result layout (${enum})"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent request limit"`
}

// InteractiveCmd is the "interactive" subcommand.
type InteractiveCmd struct {
	Mock bool   `help:"Start in mock mode"`
	View string `enum:"cards,table" default:"cards" help:"Initial result layout (${enum})"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}
