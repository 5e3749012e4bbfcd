package github

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the REST API root. Default: https://api.github.com/
	BaseURL string

	// Timeout bounds every request. Default: 10s
	Timeout time.Duration

	// RequestsPerSecond is the proactive throttle rate.
	// Zero means ProactiveRate; negative disables throttling.
	RequestsPerSecond float64

	// Burst is the number of requests allowed back to back. Default: ProactiveBurst
	Burst int

	// HTTPClient is the base client; its Transport is reused.
	// Nil uses http.DefaultTransport.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.Settings) Config {
	s.Normalize()
	return Config{
		BaseURL: s.GitHub.BaseURL,
		Timeout: s.RequestTimeout,
	}
}

// normalize fills defaults and validates the base URL.
func (c *Config) normalize() error {
	if c.BaseURL == "" {
		c.BaseURL = domain.DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = domain.DefaultRequestTimeout
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = ProactiveRate
	}
	if c.Burst <= 0 {
		c.Burst = ProactiveBurst
	}
	return nil
}
