package github

import (
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrInvalidBaseURL indicates the configured API root is not an absolute URL.
	ErrInvalidBaseURL = errors.New("github: invalid base URL")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "github: rate limit exceeded"
	}
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// wrapError converts go-github and transport errors into classified
// *domain.FetchError values.
func (c *Client) wrapError(err error, op domain.Operation) error {
	if err == nil {
		return nil
	}

	var limited *RateLimitError
	if errors.As(err, &limited) {
		return domain.NewRateLimitError(op, limited)
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if rateLimitErr.Response != nil {
			c.rateLimiter.UpdateFromResponse(rateLimitErr.Response)
		}
		return domain.NewRateLimitError(op, &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		})
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Time{}
		if d := abuseErr.GetRetryAfter(); d > 0 {
			resetAt = time.Now().Add(d)
		}
		return domain.NewRateLimitError(op, &RateLimitError{ResetAt: resetAt})
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		resp := ghErr.Response
		c.rateLimiter.UpdateFromResponse(resp)

		apiErr := &APIError{StatusCode: resp.StatusCode, Message: ghErr.Message}
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.URL = resp.Request.URL.String()
		}
		fe := domain.Classify(op, resp.StatusCode, resp.Header, ghErr.Message)
		fe.Err = apiErr
		return fe
	}

	// Transport failures and timeouts carry no status code.
	return domain.NewNetworkError(op, err)
}
