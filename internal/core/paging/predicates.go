package paging

import "github.com/custodia-labs/ghfinder/internal/core/domain"

// NextPageFunc decides whether another page exists after last.
type NextPageFunc[T any] func(last domain.Page[T], pages []domain.Page[T]) bool

// WindowedTotal allows another page while pages*pageSize is below the lesser
// of the reported total and the upstream result window cap.
func WindowedTotal[T any](pageSize, windowCap int) NextPageFunc[T] {
	return func(last domain.Page[T], pages []domain.Page[T]) bool {
		if pageSize <= 0 {
			return false
		}
		reachable := last.Total
		if windowCap > 0 && windowCap < reachable {
			reachable = windowCap
		}
		return len(pages)*pageSize < reachable
	}
}

// ContinuationFlag allows another page while the last page says more exist.
func ContinuationFlag[T any]() NextPageFunc[T] {
	return func(last domain.Page[T], _ []domain.Page[T]) bool {
		return last.HasMore
	}
}

// MaxPages returns how many pages WindowedTotal permits for a total.
func MaxPages(total, pageSize, windowCap int) int {
	if pageSize <= 0 {
		return 0
	}
	reachable := total
	if windowCap > 0 && windowCap < reachable {
		reachable = windowCap
	}
	return (reachable + pageSize - 1) / pageSize
}
