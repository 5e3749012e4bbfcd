package driven

import "context"

// TokenProvider supplies the optional bearer credential for upstream calls.
// The credential is configured, never obtained or refreshed.
type TokenProvider interface {
	// GetToken returns the current token.
	// Returns empty string when no credential is configured.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated() bool
}
