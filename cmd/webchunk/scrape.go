package main

import (
	"fmt"

	"github.com/fwojciec/webchunk"
	"golang.org/x/sync/errgroup"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	mode := webchunk.ModeLive
	if c.Mock {
		mode = webchunk.ModeMock
	}

	type outcome struct {
		resp *webchunk.ScrapeResponse
		err  error
	}
	outcomes := make([]outcome, len(c.URLs))

	var g errgroup.Group
	g.SetLimit(max(c.Concurrency, 1))
	for i, url := range c.URLs {
		g.Go(func() error {
			req := &webchunk.ScrapeRequest{URL: url, Query: c.Query}
			resp, err := deps.Service.Scrape(deps.Ctx, req, mode)
			outcomes[i] = outcome{resp: resp, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for i, o := range outcomes {
		if o.err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.URLs[i], webchunk.ErrorMessage(o.err))
			continue
		}
		renderResult(deps.Stdout, c.View, c.URLs[i], o.resp)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scrapes failed", failed, len(c.URLs))
	}
	return nil
}
