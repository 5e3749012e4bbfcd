package paging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/loop"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// DefaultTimeout bounds every page request.
const DefaultTimeout = 10 * time.Second

// FetchFunc fetches one page of the resource identified by key.
type FetchFunc[K comparable, T any] func(ctx context.Context, key K, page int) (domain.Page[T], error)

// Config parameterises a Fetcher.
type Config[K comparable, T any] struct {
	// Name labels log lines.
	Name string

	// Fetch is the page-fetch operation. Required.
	Fetch FetchFunc[K, T]

	// HasNext decides next-page availability. Required.
	HasNext NextPageFunc[T]

	// Enabled reports whether a key should be queried at all.
	// Nil means every key qualifies.
	Enabled func(K) bool

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// CacheSize is how many inactive keys keep their pages. Zero disables
	// the cache, so switching keys always starts over.
	CacheSize int

	// CacheTTL is how long fetched pages stay reusable, whether the key was
	// parked in the cache or only disabled. Zero means they never go stale.
	CacheTTL time.Duration

	// Context is the parent of every request context.
	Context context.Context
}

// collection holds the pages of one key.
type collection[T any] struct {
	pages     []domain.Page[T]
	err       error
	fetchedAt time.Time
}

// request is the single in-flight fetch.
type request struct {
	id     string
	page   int
	cancel context.CancelFunc
}

// Fetcher accumulates pages for the active key.
type Fetcher[K comparable, T any] struct {
	cfg  Config[K, T]
	loop loop.Loop

	key      K
	hasKey   bool
	enabled  bool
	coll     *collection[T]
	inflight *request
	cache    *expirable.LRU[K, *collection[T]]
	closed   bool
	requests int
}

// New creates a Fetcher. It starts enabled and without a key.
func New[K comparable, T any](l loop.Loop, cfg Config[K, T]) *Fetcher[K, T] {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Name == "" {
		cfg.Name = "fetcher"
	}

	f := &Fetcher[K, T]{
		cfg:     cfg,
		loop:    l,
		enabled: true,
		coll:    &collection[T]{},
	}
	if cfg.CacheSize > 0 {
		f.cache = expirable.NewLRU[K, *collection[T]](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return f
}

// SetKey makes k the active key. Switching keys abandons the in-flight
// request and starts over at page 1, unless k's pages are still cached.
func (f *Fetcher[K, T]) SetKey(k K) {
	if f.closed || (f.hasKey && f.key == k) {
		return
	}

	f.abandon()
	f.park()

	f.key = k
	f.hasKey = true
	f.coll = f.lookup(k)

	f.maybeStart()
}

// park stores the active collection in the cache if it is worth reusing.
func (f *Fetcher[K, T]) park() {
	if f.cache == nil || !f.hasKey {
		return
	}
	if f.coll.err != nil || len(f.coll.pages) == 0 {
		f.cache.Remove(f.key)
		return
	}
	f.cache.Add(f.key, f.coll)
}

func (f *Fetcher[K, T]) lookup(k K) *collection[T] {
	if f.cache != nil {
		if c, ok := f.cache.Get(k); ok {
			logger.Debug("%s: reusing %d cached page(s) for %v", f.cfg.Name, len(c.pages), k)
			return c
		}
	}
	return &collection[T]{}
}

// Key returns the active key and whether one is set.
func (f *Fetcher[K, T]) Key() (K, bool) {
	return f.key, f.hasKey
}

// SetEnabled suspends or resumes fetching. Disabling keeps the data held for
// the active key.
func (f *Fetcher[K, T]) SetEnabled(enabled bool) {
	if f.closed || f.enabled == enabled {
		return
	}
	f.enabled = enabled
	if !enabled {
		f.abandon()
		return
	}
	f.maybeStart()
}

// Enabled reports whether the active key may be fetched.
func (f *Fetcher[K, T]) Enabled() bool {
	return f.active()
}

func (f *Fetcher[K, T]) active() bool {
	if f.closed || !f.enabled || !f.hasKey {
		return false
	}
	return f.cfg.Enabled == nil || f.cfg.Enabled(f.key)
}

func (f *Fetcher[K, T]) maybeStart() {
	if !f.active() || f.inflight != nil || f.coll.err != nil {
		return
	}
	if len(f.coll.pages) > 0 {
		if !f.stale(f.coll) {
			return
		}
		logger.Debug("%s: pages for %v are stale, starting over", f.cfg.Name, f.key)
		if f.cache != nil {
			f.cache.Remove(f.key)
		}
		f.coll = &collection[T]{}
	}
	f.fetch(1)
}

// stale reports whether c's newest page is older than CacheTTL.
func (f *Fetcher[K, T]) stale(c *collection[T]) bool {
	if f.cfg.CacheTTL <= 0 {
		return false
	}
	return f.loop.Now().Sub(c.fetchedAt) >= f.cfg.CacheTTL
}

// TriggerNextPage requests the page after the last one held. It is a no-op,
// returning false, when no next page exists, a request is already in flight,
// the fetcher is disabled, or an error awaits Retry.
func (f *Fetcher[K, T]) TriggerNextPage() bool {
	if !f.active() || f.inflight != nil || f.coll.err != nil || !f.HasNextPage() {
		return false
	}
	f.fetch(len(f.coll.pages) + 1)
	return true
}

// Retry discards the error and all pages for the active key and fetches
// page 1 again.
func (f *Fetcher[K, T]) Retry() {
	if f.closed {
		return
	}
	f.abandon()
	if f.cache != nil && f.hasKey {
		f.cache.Remove(f.key)
	}
	f.coll = &collection[T]{}
	f.maybeStart()
}

// Reset returns the fetcher to its initial state: no key, no data, empty cache.
func (f *Fetcher[K, T]) Reset() {
	f.abandon()
	if f.cache != nil {
		f.cache.Purge()
	}
	var zero K
	f.key = zero
	f.hasKey = false
	f.coll = &collection[T]{}
}

// Close abandons in-flight work. A closed fetcher ignores all operations.
func (f *Fetcher[K, T]) Close() {
	f.Reset()
	f.closed = true
}

func (f *Fetcher[K, T]) fetch(page int) {
	ctx, cancel := context.WithTimeout(f.cfg.Context, f.cfg.Timeout)
	req := &request{
		id:     uuid.NewString(),
		page:   page,
		cancel: cancel,
	}
	f.inflight = req
	f.requests++

	key := f.key
	coll := f.coll
	fetch := f.cfg.Fetch
	logger.Debug("%s: request %s page %d for %v", f.cfg.Name, req.id, page, key)

	f.loop.Go(func() func() {
		p, err := fetch(ctx, key, page)
		return func() {
			cancel()
			f.complete(req, coll, p, err)
		}
	})
}

// complete runs on the loop when a request finishes.
func (f *Fetcher[K, T]) complete(req *request, coll *collection[T], p domain.Page[T], err error) {
	if f.inflight != req || f.coll != coll {
		logger.Debug("%s: dropping stale response %s", f.cfg.Name, req.id)
		return
	}
	f.inflight = nil

	if err != nil {
		logger.Warn("%s: request %s page %d failed: %v", f.cfg.Name, req.id, req.page, err)
		coll.err = err
		return
	}
	if req.page != len(coll.pages)+1 {
		logger.Warn("%s: dropping out-of-order page %d", f.cfg.Name, req.page)
		return
	}
	p.Number = req.page
	coll.pages = append(coll.pages, p)
	coll.fetchedAt = f.loop.Now()
}

// abandon cancels the in-flight request; its response will be dropped.
func (f *Fetcher[K, T]) abandon() {
	if f.inflight == nil {
		return
	}
	logger.Debug("%s: abandoning request %s", f.cfg.Name, f.inflight.id)
	f.inflight.cancel()
	f.inflight = nil
}

// Items returns the flattened items across all held pages.
func (f *Fetcher[K, T]) Items() []T {
	return domain.Flatten(f.coll.pages)
}

// Pages returns a copy of the held pages.
func (f *Fetcher[K, T]) Pages() []domain.Page[T] {
	out := make([]domain.Page[T], len(f.coll.pages))
	copy(out, f.coll.pages)
	return out
}

// PageCount returns how many pages are held.
func (f *Fetcher[K, T]) PageCount() int {
	return len(f.coll.pages)
}

// LastPage returns the most recent page, if any.
func (f *Fetcher[K, T]) LastPage() (domain.Page[T], bool) {
	if len(f.coll.pages) == 0 {
		return domain.Page[T]{}, false
	}
	return f.coll.pages[len(f.coll.pages)-1], true
}

// HasNextPage reports whether another page can be requested.
func (f *Fetcher[K, T]) HasNextPage() bool {
	last, ok := f.LastPage()
	if !ok {
		return false
	}
	return f.cfg.HasNext(last, f.coll.pages)
}

// IsLoadingFirstPage is true only while page 1 is in flight and no data exists.
func (f *Fetcher[K, T]) IsLoadingFirstPage() bool {
	return f.inflight != nil && f.inflight.page == 1 && len(f.coll.pages) == 0
}

// IsFetchingNextPage is true while a page beyond the first is in flight.
func (f *Fetcher[K, T]) IsFetchingNextPage() bool {
	return f.inflight != nil && f.inflight.page > 1
}

// InFlight reports whether any request is outstanding.
func (f *Fetcher[K, T]) InFlight() bool {
	return f.inflight != nil
}

// Err returns the last error for the active key.
func (f *Fetcher[K, T]) Err() error {
	return f.coll.err
}

// Requests returns how many requests this fetcher has issued.
func (f *Fetcher[K, T]) Requests() int {
	return f.requests
}

// State returns the lifecycle state of the active key.
func (f *Fetcher[K, T]) State() State {
	switch {
	case f.IsLoadingFirstPage():
		return StateLoadingFirstPage
	case f.inflight != nil:
		return StateLoadingNextPage
	case f.coll.err != nil:
		return StateError
	case len(f.coll.pages) > 0:
		return StateSuccess
	default:
		return StateIdle
	}
}
