package driven

import (
	"context"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// UserDirectory is the upstream user and repository directory.
// Implementations classify failures as *domain.FetchError.
type UserDirectory interface {
	// SearchUsers returns one page of users matching query.
	// The page's Total carries the upstream-reported match count.
	SearchUsers(ctx context.Context, query string, page, perPage int) (domain.Page[domain.User], error)

	// ListRepositories returns one page of login's repositories, most
	// recently updated first. The page's HasMore carries the continuation signal.
	ListRepositories(ctx context.Context, login string, page, perPage int) (domain.Page[domain.Repository], error)
}
