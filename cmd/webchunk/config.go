package main

import (
	"fmt"
	"strconv"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	rows := [][2]string{
		{"base_url", cfg.BaseURL},
		{"timeout", cfg.Timeout.String()},
		{"retry_attempts", strconv.Itoa(cfg.RetryAttempts)},
		{"retry_delay", cfg.RetryDelay.String()},
		{"cache_ttl", cfg.CacheTTL.String()},
		{"cache_max_size", strconv.Itoa(cfg.CacheMaxSize)},
		{"scrape_path", cfg.Endpoints.Scrape},
		{"mock_path", cfg.Endpoints.MockScrape},
	}
	for _, r := range rows {
		fmt.Fprintf(deps.Stdout, "%-16s %s\n", r[0], r[1])
	}
	return nil
}
