// Package paging implements the generic paginated fetcher.
//
// A [Fetcher] owns the pages fetched for one active key at a time. Two
// configurations exist in ghfinder: the keyword search over users, whose
// next-page availability comes from [WindowedTotal], and the per-user
// repository list, which follows the upstream continuation flag via
// [ContinuationFlag].
//
// # Invariants
//
//   - At most one request is in flight per fetcher, hence per key.
//   - Pages for a key are requested strictly in order from 1, never skipping
//     and never re-requesting a page already held.
//   - Responses for an abandoned key or superseded request are dropped.
//   - Errors stop auto-advancing until Retry is called.
//   - Pages older than CacheTTL, by the loop's clock, are discarded when their
//     key becomes active again.
//
// A Fetcher is not safe for concurrent use. It is driven from the goroutine
// that drains its [loop.Loop].
package paging
