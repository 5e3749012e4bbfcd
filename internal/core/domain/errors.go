package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from classified upstream failures (see FetchError).
var (
	// ErrQueryTooShort indicates a submitted query is below MinQueryLength.
	ErrQueryTooShort = errors.New(QueryTooShortMessage)

	// ErrEmptyLogin indicates a repository listing was requested without a login.
	ErrEmptyLogin = errors.New("login is required")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
