// Package domain defines the core entities for ghfinder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - User: A top-level search result from the GitHub user directory
//   - Repository: A nested item listed for one user
//   - Page: One fetched batch of items plus continuation metadata
//   - FetchError: A classified upstream failure with a user-facing message
//   - Settings: Effective application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
