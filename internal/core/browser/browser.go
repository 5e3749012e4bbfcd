// Package browser ties search-as-you-type input to paginated user search and
// per-user repository browsing.
//
// A Browser is owned by a single loop. Every exported method, and every
// completion it schedules, must run on that loop.
package browser

import (
	"context"

	"github.com/custodia-labs/ghfinder/internal/core/debounce"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/loop"
	"github.com/custodia-labs/ghfinder/internal/core/paging"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driving"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// Browser is the search orchestrator.
type Browser struct {
	settings domain.Settings

	query      string
	validation string
	expanded   string

	debouncer *debounce.Debouncer[string]
	users     *paging.Fetcher[string, domain.User]
	repos     *paging.Fetcher[string, domain.Repository]
	cancel    context.CancelFunc
}

// New creates a Browser that fetches through svc.
// Zero-valued settings take defaults.
func New(l loop.Loop, svc driving.DirectoryService, settings domain.Settings) *Browser {
	settings.Normalize()
	ctx, cancel := context.WithCancel(context.Background())

	b := &Browser{
		settings: settings,
		cancel:   cancel,
	}

	usersPerPage := settings.Search.PerPage
	b.users = paging.New(l, paging.Config[string, domain.User]{
		Name: "users",
		Fetch: func(ctx context.Context, query string, page int) (domain.Page[domain.User], error) {
			return svc.SearchUsers(ctx, query, page, usersPerPage)
		},
		HasNext: paging.WindowedTotal[domain.User](usersPerPage, settings.Search.ResultWindowCap),
		Enabled: domain.QueryQualifies,
		Timeout: settings.RequestTimeout,
		Context: ctx,
	})

	reposPerPage := settings.Repos.PerPage
	b.repos = paging.New(l, paging.Config[string, domain.Repository]{
		Name: "repositories",
		Fetch: func(ctx context.Context, login string, page int) (domain.Page[domain.Repository], error) {
			return svc.ListRepositories(ctx, login, page, reposPerPage)
		},
		HasNext:   paging.ContinuationFlag[domain.Repository](),
		Enabled:   func(login string) bool { return login != "" },
		Timeout:   settings.RequestTimeout,
		CacheSize: settings.Repos.CacheSize,
		CacheTTL:  settings.Repos.CacheTTL,
		Context:   ctx,
	})
	b.repos.SetEnabled(false)

	b.debouncer = debounce.New(l, settings.Search.Debounce, b.settle)
	return b
}

// SetQuery records a keystroke-level change of the query text.
func (b *Browser) SetQuery(q string) {
	b.query = q
	if b.validation != "" && domain.QueryQualifies(q) {
		b.validation = ""
	}
	b.debouncer.Set(q)
}

// Submit records an explicit search submission. A query under three
// characters sets the validation message and returns domain.ErrQueryTooShort
// without any request. Submission always collapses the expanded user.
func (b *Browser) Submit(q string) error {
	b.collapse()
	b.query = q
	b.debouncer.Set(q)

	if !domain.QueryQualifies(q) {
		b.validation = domain.QueryTooShortMessage
		logger.Debug("browser: rejected short query %q", q)
		return domain.ErrQueryTooShort
	}
	b.validation = ""
	return nil
}

// settle runs when the query has been stable for the settle delay.
func (b *Browser) settle(q string) {
	key := domain.NormalizeQuery(q)
	if cur, ok := b.users.Key(); !ok || cur != key {
		b.collapse()
	}
	logger.Debug("browser: query settled to %q", key)
	b.users.SetKey(key)
}

// Query returns the raw query text.
func (b *Browser) Query() string {
	return b.query
}

// DebouncedQuery returns the settled query text.
func (b *Browser) DebouncedQuery() string {
	return b.debouncer.Value()
}

// Users returns all fetched users in page order.
func (b *Browser) Users() []domain.User {
	return b.users.Items()
}

// LoadMoreUsers requests the next page of users.
func (b *Browser) LoadMoreUsers() bool {
	return b.users.TriggerNextPage()
}

// Refetch re-attempts the current search from page 1.
func (b *Browser) Refetch() {
	b.users.Retry()
}

// Toggle expands login, collapsing any other expanded user, or collapses
// login if it is already expanded.
func (b *Browser) Toggle(login string) {
	if login == "" {
		return
	}
	if b.expanded == login {
		b.collapse()
		return
	}
	b.expand(login)
}

// Expanded returns the expanded login, or empty if none.
func (b *Browser) Expanded() string {
	return b.expanded
}

// IsExpanded reports whether login is the expanded user.
func (b *Browser) IsExpanded(login string) bool {
	return login != "" && b.expanded == login
}

func (b *Browser) expand(login string) {
	logger.Debug("browser: expand %q (was %q)", login, b.expanded)
	b.expanded = login
	b.repos.SetKey(login)
	b.repos.SetEnabled(true)
}

func (b *Browser) collapse() {
	if b.expanded == "" {
		return
	}
	logger.Debug("browser: collapse %q", b.expanded)
	b.expanded = ""
	b.repos.SetEnabled(false)
}

// Repositories returns the expanded user's fetched repositories.
func (b *Browser) Repositories() []domain.Repository {
	if b.expanded == "" {
		return nil
	}
	return b.repos.Items()
}

// LoadMoreRepositories requests the next page for the expanded user.
func (b *Browser) LoadMoreRepositories() bool {
	if b.expanded == "" {
		return false
	}
	return b.repos.TriggerNextPage()
}

// RetryRepositories re-attempts the expanded user's listing from page 1.
func (b *Browser) RetryRepositories() {
	if b.expanded == "" {
		return
	}
	b.repos.Retry()
}

// Retry returns the browser to its start-up state.
func (b *Browser) Retry() {
	logger.Debug("browser: reset")
	b.query = ""
	b.validation = ""
	b.debouncer.Reset("")
	b.collapse()
	b.users.Reset()
	b.repos.Reset()
}

// Close cancels the settle timer and all in-flight requests.
func (b *Browser) Close() {
	b.debouncer.Close()
	b.users.Close()
	b.repos.Close()
	b.cancel()
}

// Settings returns the effective settings.
func (b *Browser) Settings() domain.Settings {
	return b.settings
}

// Presentation derives the top-level view state.
func (b *Browser) Presentation() domain.Presentation {
	q := domain.NormalizeQuery(b.query)
	switch {
	case b.validation != "":
		return domain.PresentationTooShort
	case !domain.QueryQualifies(q):
		return domain.PresentationIdle
	case b.users.Err() != nil:
		return domain.PresentationError
	case b.debouncer.Pending():
		return domain.PresentationDebouncing
	case b.users.IsLoadingFirstPage():
		return domain.PresentationLoading
	case len(b.users.Items()) > 0:
		if b.users.IsFetchingNextPage() {
			return domain.PresentationLoadingMore
		}
		return domain.PresentationResults
	default:
		return domain.PresentationNoResults
	}
}

// Busy reports whether a settle or any request is outstanding.
func (b *Browser) Busy() bool {
	return b.debouncer.Pending() || b.users.InFlight() || b.repos.InFlight()
}
