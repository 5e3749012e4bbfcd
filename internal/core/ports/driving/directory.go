package driving

import (
	"context"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// DirectoryService provides user search and repository browsing to
// external actors.
type DirectoryService interface {
	// SearchUsers returns one page of users matching query.
	// Returns domain.ErrQueryTooShort if the trimmed query is under three characters.
	SearchUsers(ctx context.Context, query string, page, perPage int) (domain.Page[domain.User], error)

	// ListRepositories returns one page of login's repositories.
	// Returns domain.ErrEmptyLogin if login is blank.
	ListRepositories(ctx context.Context, login string, page, perPage int) (domain.Page[domain.Repository], error)
}
