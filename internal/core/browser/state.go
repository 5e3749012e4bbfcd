package browser

import "github.com/custodia-labs/ghfinder/internal/core/domain"

// Nested-list messages.
const (
	NoRepositoriesMessage  = "No repositories found"
	RepositoryErrorMessage = "Failed to load repositories. Please try again later."
)

// State is a serializable snapshot of everything the renderer needs.
type State struct {
	Query          string              `json:"query"`
	DebouncedQuery string              `json:"debounced_query"`
	Presentation   domain.Presentation `json:"presentation"`

	// Message is the validation or empty-state text, if any.
	Message string `json:"message,omitempty"`

	Users              []domain.User `json:"users"`
	TotalCount         int           `json:"total_count"`
	Pages              int           `json:"pages"`
	HasNextPage        bool          `json:"has_next_page"`
	IsLoading          bool          `json:"is_loading"`
	IsFetchingNextPage bool          `json:"is_fetching_next_page"`

	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`

	Expanded *Expansion `json:"expanded,omitempty"`
}

// Expansion is the state of the expanded user's repository list.
type Expansion struct {
	Login              string              `json:"login"`
	Repositories       []domain.Repository `json:"repositories"`
	HasNextPage        bool                `json:"has_next_page"`
	IsLoading          bool                `json:"is_loading"`
	IsFetchingNextPage bool                `json:"is_fetching_next_page"`

	// Message is the empty-state or failure text, if any.
	Message string `json:"message,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// Snapshot captures the current state.
func (b *Browser) Snapshot() State {
	p := b.Presentation()
	s := State{
		Query:          b.query,
		DebouncedQuery: b.debouncer.Value(),
		Presentation:   p,
		Message:        p.Placeholder(),
		Users:          b.users.Items(),
		Pages:          b.users.PageCount(),
		HasNextPage:    b.users.HasNextPage(),
		IsLoading:      b.users.IsLoadingFirstPage(),

		IsFetchingNextPage: b.users.IsFetchingNextPage(),
	}
	if last, ok := b.users.LastPage(); ok {
		s.TotalCount = last.Total
	}
	if err := b.users.Err(); err != nil {
		s.Error = domain.UserMessage(err)
		s.ErrorKind = domain.KindOf(err).String()
	}
	if b.expanded != "" {
		s.Expanded = b.expansion()
	}
	return s
}

func (b *Browser) expansion() *Expansion {
	e := &Expansion{
		Login:              b.expanded,
		Repositories:       b.repos.Items(),
		HasNextPage:        b.repos.HasNextPage(),
		IsLoading:          b.repos.IsLoadingFirstPage(),
		IsFetchingNextPage: b.repos.IsFetchingNextPage(),
	}
	switch err := b.repos.Err(); {
	case err != nil:
		e.Message = RepositoryErrorMessage
		e.Error = domain.UserMessage(err)
		e.ErrorKind = domain.KindOf(err).String()
	case !e.IsLoading && len(e.Repositories) == 0:
		e.Message = NoRepositoriesMessage
	}
	return e
}
