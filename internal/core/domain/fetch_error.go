package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// HeaderRateRemaining carries the remaining request quota on GitHub responses.
const HeaderRateRemaining = "X-RateLimit-Remaining"

// Operation names the upstream call that failed.
type Operation string

const (
	// OpSearchUsers is the keyword search over the user directory.
	OpSearchUsers Operation = "search"

	// OpListRepositories lists repositories for one user.
	OpListRepositories Operation = "fetch repositories"
)

// ErrorKind classifies an upstream failure.
type ErrorKind int

const (
	// KindUnclassified is any failure without a more specific kind.
	KindUnclassified ErrorKind = iota
	// KindAuthFailed is a rejected bearer credential (401).
	KindAuthFailed
	// KindRateLimited is an exhausted request quota (403 with zero remaining, or 429).
	KindRateLimited
	// KindForbidden is a 403 that is not quota related.
	KindForbidden
	// KindNotFound is a missing parent key or resource (404).
	KindNotFound
	// KindInvalidQuery is a malformed search query (422).
	KindInvalidQuery
	// KindServiceUnavailable is a temporary upstream outage (503).
	KindServiceUnavailable
	// KindNetworkOrTimeout is a failure with no status code.
	KindNetworkOrTimeout
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthFailed:
		return "auth_failed"
	case KindRateLimited:
		return "rate_limited"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidQuery:
		return "invalid_query"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindNetworkOrTimeout:
		return "network_or_timeout"
	case KindUnclassified:
		return "unclassified"
	default:
		return "unclassified"
	}
}

// FetchError is a classified failure of an upstream page fetch.
// Error returns the user-facing message.
type FetchError struct {
	Kind    ErrorKind
	Op      Operation
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindForStatus maps a response status to an error kind.
// A 403 is only a rate limit when the remaining-quota header reads "0".
func KindForStatus(status int, header http.Header) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuthFailed
	case http.StatusForbidden:
		if header != nil && header.Get(HeaderRateRemaining) == "0" {
			return KindRateLimited
		}
		return KindForbidden
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnprocessableEntity:
		return KindInvalidQuery
	case http.StatusServiceUnavailable:
		return KindServiceUnavailable
	default:
		return KindUnclassified
	}
}

// Classify builds a FetchError from an upstream response.
// apiMessage is the "message" field of the error body, empty when the body
// could not be parsed.
func Classify(op Operation, status int, header http.Header, apiMessage string) *FetchError {
	kind := KindForStatus(status, header)
	return &FetchError{
		Kind:    kind,
		Op:      op,
		Status:  status,
		Message: MessageFor(kind, op, apiMessage, http.StatusText(status)),
	}
}

// NewRateLimitError builds a RateLimited FetchError wrapping cause.
func NewRateLimitError(op Operation, cause error) *FetchError {
	return &FetchError{
		Kind:    KindRateLimited,
		Op:      op,
		Status:  http.StatusForbidden,
		Message: MessageFor(KindRateLimited, op, "", ""),
		Err:     errors.Join(ErrRateLimited, cause),
	}
}

// NewNetworkError wraps a transport failure that carries no status code.
// The underlying message is preserved.
func NewNetworkError(op Operation, err error) *FetchError {
	msg := "unknown network error"
	if err != nil {
		msg = err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "request timed out: " + msg
	}
	return &FetchError{
		Kind:    KindNetworkOrTimeout,
		Op:      op,
		Message: msg,
		Err:     err,
	}
}

// MessageFor returns the user-facing message for a kind.
func MessageFor(kind ErrorKind, op Operation, apiMessage, statusText string) string {
	switch kind {
	case KindAuthFailed:
		return "Authentication failed. Please check your GitHub token."
	case KindRateLimited:
		return "API rate limit exceeded. Please try again later or add a GitHub token for higher limits."
	case KindForbidden:
		return "Access forbidden. You do not have permission to access this resource."
	case KindNotFound:
		if op == OpSearchUsers {
			return "No results found."
		}
		return "User not found."
	case KindInvalidQuery:
		if apiMessage != "" {
			return apiMessage
		}
		return "Invalid search query. Please try a different search term."
	case KindServiceUnavailable:
		return "GitHub service is temporarily unavailable. Please try again later."
	case KindNetworkOrTimeout:
		if apiMessage != "" {
			return apiMessage
		}
		return "Network error. Please check your connection and try again."
	case KindUnclassified:
		return unclassifiedMessage(op, apiMessage, statusText)
	default:
		return unclassifiedMessage(op, apiMessage, statusText)
	}
}

func unclassifiedMessage(op Operation, apiMessage, statusText string) string {
	detail := apiMessage
	if detail == "" {
		detail = statusText
	}
	if detail == "" {
		detail = "Unknown error"
	}
	return fmt.Sprintf("Failed to %s: %s", op, detail)
}

// KindOf returns the kind of a FetchError in err's chain, or KindUnclassified.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnclassified
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An error occurred while searching"
}
