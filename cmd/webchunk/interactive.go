package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/webchunk"
)

const interactiveHelp = `Enter "url [query]" to scrape a page. A new submission cancels the previous one.
Commands:
  :mode live|mock    switch endpoint
  :view cards|table  switch result layout
  :clear             drop cached responses
  :cancel            cancel the request in flight
  :quit              exit`

// Run executes the interactive command.
func (c *InteractiveCmd) Run(deps *Dependencies) error {
	s := &session{deps: deps, mode: webchunk.ModeLive, view: c.View, seen: make(map[string]string)}
	if c.Mock {
		s.mode = webchunk.ModeMock
	}
	defer s.wg.Wait()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(deps.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	s.println(interactiveHelp)
	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case strings.HasPrefix(line, ":"):
				if s.command(line) {
					deps.Service.CancelAll()
					return nil
				}
			default:
				s.submit(line)
			}
		}
	}
}

// session holds the state of one interactive run. Output is serialized
// because results are printed from request goroutines.
type session struct {
	deps *Dependencies
	mode webchunk.Mode
	view string

	mu   sync.Mutex
	wg   sync.WaitGroup
	seen map[string]string // last fingerprint per mode, url and query
}

// command applies a ":" command and reports whether the session should end.
func (s *session) command(line string) bool {
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		s.println(interactiveHelp)
	case ":mode":
		mode, err := webchunk.ParseMode(arg)
		if err != nil || arg == "" {
			s.errorf("usage: :mode live|mock")
			return false
		}
		s.mode = mode
		s.println("mode: " + string(mode))
	case ":view":
		if arg != viewCards && arg != viewTable {
			s.errorf("usage: :view cards|table")
			return false
		}
		s.view = arg
		s.println("view: " + arg)
	case ":clear":
		s.deps.Service.ClearCache()
		s.println("cache cleared")
	case ":cancel":
		s.deps.Service.CancelAll()
	default:
		s.errorf("unknown command %s (try :help)", fields[0])
	}
	return false
}

// submit cancels the request in flight and scrapes the page named by line.
func (s *session) submit(line string) {
	fields := strings.Fields(line)
	req := &webchunk.ScrapeRequest{
		URL:   fields[0],
		Query: strings.Join(fields[1:], " "),
	}
	mode, view := s.mode, s.view

	s.deps.Service.CancelAll()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		resp, err := s.deps.Service.Scrape(s.deps.Ctx, req, mode)

		switch {
		case webchunk.ErrorCode(err) == webchunk.ECANCELED:
			// Superseded by a later submission.
		case err != nil:
			s.errorf("%s", webchunk.ErrorMessage(err))
		default:
			s.mu.Lock()
			defer s.mu.Unlock()
			renderResult(s.deps.Stdout, view, req.URL, resp)
			key := string(mode) + " " + req.URL + " " + req.Query
			fp := fingerprint(resp)
			if prev, ok := s.seen[key]; ok && prev == fp {
				fmt.Fprintln(s.deps.Stdout, "unchanged since last result")
			}
			s.seen[key] = fp
		}
	}()
}

// fingerprint identifies a chunk list by the ordered content hashes of its
// chunks.
func fingerprint(resp *webchunk.ScrapeResponse) string {
	hashes := make([]string, len(resp.Chunks))
	for i, c := range resp.Chunks {
		hashes[i] = c.Hash
		if hashes[i] == "" {
			hashes[i] = webchunk.HashContent(c.Content)
		}
	}
	return strings.Join(hashes, ",")
}

func (s *session) println(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.deps.Stdout, msg)
}

func (s *session) errorf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.deps.Stderr, "error: "+format+"\n", args...)
}
