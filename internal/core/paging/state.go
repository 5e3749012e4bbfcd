package paging

// State is the fetch lifecycle of the active key.
type State int

const (
	// StateIdle means nothing has been fetched and nothing is in flight.
	StateIdle State = iota
	// StateLoadingFirstPage means page 1 is in flight and no data exists.
	StateLoadingFirstPage
	// StateLoadingNextPage means a page beyond the first is in flight.
	StateLoadingNextPage
	// StateSuccess means at least one page is held and nothing failed.
	StateSuccess
	// StateError means the last request failed.
	StateError
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingFirstPage:
		return "loading_first_page"
	case StateLoadingNextPage:
		return "loading_next_page"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
