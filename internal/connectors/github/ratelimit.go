package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

const (
	// UnauthenticatedRateLimit is the core quota without a token (60/hour).
	UnauthenticatedRateLimit = 60

	// ProactiveRate is the default proactive throttle (requests per second).
	ProactiveRate = 2.0

	// ProactiveBurst is the default number of back-to-back requests.
	ProactiveBurst = 4

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = domain.HeaderRateRemaining

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRateResource names the quota bucket (core, search).
	HeaderRateResource = "X-RateLimit-Resource"
)

// Quota buckets named by the X-RateLimit-Resource header.
const (
	ResourceCore   = "core"
	ResourceSearch = "search"
)

// RateStatus is a point-in-time view of one upstream quota.
type RateStatus struct {
	Known     bool
	Resource  string
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// RateLimiter implements dual-strategy rate limiting for GitHub API.
//
// A token bucket spaces out requests, and the quota headers of every
// response are tracked per resource. An interactive caller must not sit out
// a reset window, so an exhausted quota fails fast.
type RateLimiter struct {
	mu     sync.Mutex
	quotas map[string]*RateStatus
	last   string
	bucket *rate.Limiter
	now    func() time.Time
}

// NewRateLimiter creates a rate limiter. rps <= 0 disables throttling.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		quotas: make(map[string]*RateStatus),
		last:   ResourceCore,
		bucket: rate.NewLimiter(limit, burst),
		now:    time.Now,
	}
}

// Wait blocks until the token bucket admits a request against resource.
// It returns a *RateLimitError at once if that quota is known to be exhausted.
func (r *RateLimiter) Wait(ctx context.Context, resource string) error {
	r.mu.Lock()
	q, ok := r.quotas[resource]
	var exhausted *RateLimitError
	if ok && q.Remaining <= 0 && r.now().Before(q.ResetAt) {
		exhausted = &RateLimitError{ResetAt: q.ResetAt, Remaining: q.Remaining, Limit: q.Limit}
	}
	r.mu.Unlock()

	if exhausted != nil {
		return exhausted
	}
	return r.bucket.Wait(ctx)
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	remaining, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining))
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	resource := resp.Header.Get(HeaderRateResource)
	if resource == "" {
		resource = ResourceCore
	}
	q, ok := r.quotas[resource]
	if !ok {
		q = &RateStatus{Resource: resource, Limit: UnauthenticatedRateLimit}
		r.quotas[resource] = q
	}
	q.Known = true
	q.Remaining = remaining

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			q.Limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			q.ResetAt = time.Unix(val, 0)
		}
	}
	r.last = resource
}

// Status returns the most recently observed quota.
func (r *RateLimiter) Status() RateStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusLocked(r.last)
}

// StatusFor returns the observed quota of resource.
func (r *RateLimiter) StatusFor(resource string) RateStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusLocked(resource)
}

func (r *RateLimiter) statusLocked(resource string) RateStatus {
	if q, ok := r.quotas[resource]; ok {
		return *q
	}
	return RateStatus{Resource: resource}
}
