package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForStatus(t *testing.T) {
	exhausted := http.Header{}
	exhausted.Set(HeaderRateRemaining, "0")
	remaining := http.Header{}
	remaining.Set(HeaderRateRemaining, "12")

	tests := []struct {
		name   string
		status int
		header http.Header
		want   ErrorKind
	}{
		{"401", http.StatusUnauthorized, nil, KindAuthFailed},
		{"403 with zero remaining", http.StatusForbidden, exhausted, KindRateLimited},
		{"403 with quota left", http.StatusForbidden, remaining, KindForbidden},
		{"403 without header", http.StatusForbidden, nil, KindForbidden},
		{"429", http.StatusTooManyRequests, nil, KindRateLimited},
		{"404", http.StatusNotFound, nil, KindNotFound},
		{"422", http.StatusUnprocessableEntity, nil, KindInvalidQuery},
		{"503", http.StatusServiceUnavailable, nil, KindServiceUnavailable},
		{"500", http.StatusInternalServerError, nil, KindUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindForStatus(tt.status, tt.header))
		})
	}
}

func TestClassify_Messages(t *testing.T) {
	tests := []struct {
		name       string
		op         Operation
		status     int
		apiMessage string
		want       string
	}{
		{"auth", OpSearchUsers, 401, "", "Authentication failed. Please check your GitHub token."},
		{"rate limit", OpSearchUsers, 429, "", "API rate limit exceeded. Please try again later or add a GitHub token for higher limits."},
		{"forbidden", OpListRepositories, 403, "", "Access forbidden. You do not have permission to access this resource."},
		{"search not found", OpSearchUsers, 404, "", "No results found."},
		{"user not found", OpListRepositories, 404, "", "User not found."},
		{"invalid query with message", OpSearchUsers, 422, "Validation Failed", "Validation Failed"},
		{"invalid query", OpSearchUsers, 422, "", "Invalid search query. Please try a different search term."},
		{"unavailable", OpSearchUsers, 503, "", "GitHub service is temporarily unavailable. Please try again later."},
		{"unclassified with message", OpSearchUsers, 500, "boom", "Failed to search: boom"},
		{"unclassified with status text", OpListRepositories, 502, "", "Failed to fetch repositories: Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.op, tt.status, nil, tt.apiMessage)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.op, err.Op)
		})
	}
}

func TestMessageFor_UnknownDetail(t *testing.T) {
	assert.Equal(t, "Failed to search: Unknown error", MessageFor(KindUnclassified, OpSearchUsers, "", ""))
}

func TestNewRateLimitError(t *testing.T) {
	cause := errors.New("quota exhausted until 12:00")
	err := NewRateLimitError(OpListRepositories, cause)

	assert.Equal(t, KindRateLimited, err.Kind)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "API rate limit exceeded")
}

func TestNewNetworkError(t *testing.T) {
	t.Run("preserves the underlying message", func(t *testing.T) {
		err := NewNetworkError(OpSearchUsers, errors.New("connection refused"))

		assert.Equal(t, KindNetworkOrTimeout, err.Kind)
		assert.Equal(t, "connection refused", err.Error())
		assert.Zero(t, err.Status)
	})

	t.Run("timeout", func(t *testing.T) {
		err := NewNetworkError(OpSearchUsers, fmt.Errorf("get: %w", context.DeadlineExceeded))

		assert.Contains(t, err.Error(), "request timed out")
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("nil cause", func(t *testing.T) {
		err := NewNetworkError(OpSearchUsers, nil)
		assert.Equal(t, "unknown network error", err.Error())
	})
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("search failed: %w", Classify(OpSearchUsers, 401, nil, ""))

	assert.Equal(t, KindAuthFailed, KindOf(wrapped))
	assert.Equal(t, KindUnclassified, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnclassified, KindOf(nil))
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "User not found.", UserMessage(fmt.Errorf("x: %w", Classify(OpListRepositories, 404, nil, ""))))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "An error occurred while searching", UserMessage(errors.New("")))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "auth_failed", KindAuthFailed.String())
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "network_or_timeout", KindNetworkOrTimeout.String())
	assert.Equal(t, "unclassified", ErrorKind(99).String())
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := &FetchError{Kind: KindUnclassified, Message: "msg", Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "msg", err.Error())
}
