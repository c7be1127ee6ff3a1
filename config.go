package webchunk

import (
	"net/url"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL       = "http://localhost:8000"
	DefaultTimeout       = 30 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 1 * time.Second
	DefaultCacheTTL      = 5 * time.Minute
	DefaultCacheMaxSize  = 100

	DefaultScrapePath     = "/api/scrape"
	DefaultMockScrapePath = "/api/mock/scrape"
)

// Endpoints holds the service paths for each Mode.
type Endpoints struct {
	Scrape     string `json:"scrape"`
	MockScrape string `json:"mockScrape"`
}

// For returns the endpoint path for mode.
func (e Endpoints) For(mode Mode) string {
	if mode == ModeMock {
		return e.MockScrape
	}
	return e.Scrape
}

// Config holds client settings. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	BaseURL       string        `json:"baseUrl"`
	Timeout       time.Duration `json:"timeout"`
	RetryAttempts int           `json:"retryAttempts"`
	RetryDelay    time.Duration `json:"retryDelay"`
	CacheTTL      time.Duration `json:"cacheTtl"`
	CacheMaxSize  int           `json:"cacheMaxSize"`
	Endpoints     Endpoints     `json:"endpoints"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelay,
		CacheTTL:      DefaultCacheTTL,
		CacheMaxSize:  DefaultCacheMaxSize,
		Endpoints: Endpoints{
			Scrape:     DefaultScrapePath,
			MockScrape: DefaultMockScrapePath,
		},
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "base url %q must be absolute", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return Errorf(EINVALID, "retry attempts must not be negative")
	}
	if c.RetryDelay < 0 {
		return Errorf(EINVALID, "retry delay must not be negative")
	}
	if c.CacheTTL <= 0 {
		return Errorf(EINVALID, "cache ttl must be positive")
	}
	if c.CacheMaxSize < 1 {
		return Errorf(EINVALID, "cache max size must be at least 1")
	}
	if c.Endpoints.Scrape == "" || c.Endpoints.MockScrape == "" {
		return Errorf(EINVALID, "scrape endpoints required")
	}
	return nil
}
