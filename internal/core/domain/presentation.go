package domain

// Presentation is the top-level view state derived by the orchestrator.
type Presentation string

// Presentation states, in the order the renderer checks them.
const (
	// PresentationIdle means no query has been entered.
	PresentationIdle Presentation = "idle"

	// PresentationTooShort means the query is non-empty but below MinQueryLength.
	PresentationTooShort Presentation = "too_short"

	// PresentationError means the current search failed.
	PresentationError Presentation = "error"

	// PresentationDebouncing means the query has not settled yet.
	PresentationDebouncing Presentation = "debouncing"

	// PresentationLoading means the first page is in flight.
	PresentationLoading Presentation = "loading"

	// PresentationResults means at least one user is available.
	PresentationResults Presentation = "results"

	// PresentationLoadingMore means results are shown and a next page is in flight.
	PresentationLoadingMore Presentation = "loading_more"

	// PresentationNoResults means the search succeeded with zero users.
	PresentationNoResults Presentation = "no_results"
)

// String returns the string representation.
func (p Presentation) String() string {
	return string(p)
}

// Placeholder returns the empty-state text for states that render one.
func (p Presentation) Placeholder() string {
	switch p {
	case PresentationIdle:
		return "Start by searching for GitHub users"
	case PresentationTooShort:
		return QueryTooShortMessage
	case PresentationNoResults:
		return "No users found matching your search"
	case PresentationError, PresentationDebouncing, PresentationLoading,
		PresentationResults, PresentationLoadingMore:
		return ""
	default:
		return ""
	}
}

// Busy reports whether a request or settle is outstanding.
func (p Presentation) Busy() bool {
	return p == PresentationDebouncing || p == PresentationLoading || p == PresentationLoadingMore
}
