// Package github implements the user directory on the GitHub REST API.
//
// # Architecture
//
// The client follows the driven port pattern defined in [driven.UserDirectory].
// It comprises the following components:
//
//   - Client: user search and repository listing through go-github
//   - RateLimiter: proactive throttling plus quota header tracking
//   - Config: API root, timeout and throttle settings
//
// # Endpoints
//
//   - GET /search/users?q=&page=&per_page=: the total_count of the response
//     drives result-window pagination.
//   - GET /users/{login}/repos?sort=updated&page=&per_page=: the Link header's
//     rel="next" entry is the continuation signal.
//
// # Authentication
//
// A token, when configured, is attached as a bearer credential. Anonymous
// requests work but are limited to 60 core and 10 search requests per
// window. The client never obtains or refreshes a token; it rebuilds its
// transport when the token provider starts returning a different value.
//
// # Errors
//
// Every failure is returned as a *domain.FetchError. A 403 is reported as
// rate limited only when X-RateLimit-Remaining is "0".
package github
