package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webchunk"
	"github.com/fwojciec/webchunk/goquery"
	"github.com/fwojciec/webchunk/htmltomarkdown"
	wchttp "github.com/fwojciec/webchunk/http"
	"github.com/fwojciec/webchunk/local"
	"github.com/fwojciec/webchunk/readability"
	"github.com/fwojciec/webchunk/rod"
	"github.com/fwojciec/webchunk/scrape"
	wcslog "github.com/fwojciec/webchunk/slog"
	"github.com/fwojciec/webchunk/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
	// Input for the interactive command.
	Stdin io.Reader

	// Service replaces the wired scrape service. Set for end-to-end testing.
	Service webchunk.ScrapeService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Close releases the resources opened by Run.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webchunk"),
		kong.Description("Fetch relevance-scored content chunks for web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webchunk --help' to see available commands")
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

	cfg := cli.ClientConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", webchunk.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cli.Verbose)

	if kongCtx.Command() != "config" {
		defer m.Close()
		if m.Service == nil {
			svc, err := m.wireService(cli, cfg, deps.Logger)
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", webchunk.ErrorMessage(err))
				return err
			}
			m.Service = svc
		}
		deps.Service = m.Service
	}

	return kongCtx.Run(deps)
}

// wireService builds the scrape service stack for cfg.
func (m *Main) wireService(cli *CLI, cfg webchunk.Config, logger *slog.Logger) (webchunk.ScrapeService, error) {
	var rt http.RoundTripper = http.DefaultTransport
	if cli.Local {
		t, err := m.localTransport(cli, cfg, logger)
		if err != nil {
			return nil, err
		}
		rt = t
	}

	client := wchttp.NewClientFromConfig(cfg,
		wchttp.WithTransport(rt),
		wchttp.WithLogger(logger),
	)
	svc := scrape.NewService(wcslog.NewLoggingScrapeClient(client, logger), cfg, scrape.WithLogger(logger))
	m.closers = append(m.closers, svc)
	return wcslog.NewLoggingScrapeService(svc, logger), nil
}

// localTransport serves the mock endpoint in-process from fetched pages.
func (m *Main) localTransport(cli *CLI, cfg webchunk.Config, logger *slog.Logger) (*local.Transport, error) {
	var fetcher webchunk.Fetcher = wchttp.NewFetcher(wchttp.WithTimeout(cfg.Timeout))
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.Timeout))
		if err != nil {
			return nil, webchunk.Errorf(webchunk.EINTERNAL, "failed to start browser (Chrome or Chromium must be installed): %s", webchunk.ErrorMessage(err))
		}
		fetcher = f
	}
	fetcher = wcslog.NewLoggingFetcher(fetcher, logger)
	m.closers = append(m.closers, fetcher)

	var extractor webchunk.Extractor = trafilatura.NewExtractor()
	if cli.Extractor == "readability" {
		extractor = readability.NewExtractor()
	}

	return &local.Transport{
		Next:        http.DefaultTransport,
		Path:        cfg.Endpoints.MockScrape,
		Fetcher:     fetcher,
		RateLimiter: local.NewDomainLimiter(local.DefaultRequestsPerSecond),
		Chunker:     goquery.NewChunker(),
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		Logger:      logger,
	}, nil
}

// newLogger returns a debug text logger on w when verbose is set and a
// discarding logger otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
