package domain

// Page is one fetched unit of a paginated resource.
type Page[T any] struct {
	// Number is the 1-based page ordinal.
	Number int `json:"page"`

	// Items holds the page's items in upstream order.
	Items []T `json:"items"`

	// Total is the upstream-reported total match count.
	// Zero for resources that paginate by continuation only.
	Total int `json:"total_count,omitempty"`

	// HasMore is the upstream continuation signal (Link rel="next").
	HasMore bool `json:"has_more"`
}

// Len returns the number of items on the page.
func (p Page[T]) Len() int {
	return len(p.Items)
}

// Flatten concatenates the items of pages in order.
func Flatten[T any](pages []Page[T]) []T {
	n := 0
	for i := range pages {
		n += len(pages[i].Items)
	}
	items := make([]T, 0, n)
	for i := range pages {
		items = append(items, pages[i].Items...)
	}
	return items
}
