package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driven"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.UserDirectory = (*Client)(nil)

// RepositorySort is the listing order for user repositories.
const RepositorySort = "updated"

// Client wraps the go-github client for user search and repository listing.
type Client struct {
	mu            sync.Mutex
	gh            *gh.Client
	token         string
	cfg           Config
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// NewClient creates a new GitHub API client. tokenProvider may be nil for
// anonymous access.
func NewClient(tokenProvider driven.TokenProvider, cfg Config) (*Client, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:           cfg,
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// ensureClient returns the go-github client for the current token.
// The client is rebuilt when the provider's token changes.
func (c *Client) ensureClient(ctx context.Context) (*gh.Client, error) {
	token := ""
	if c.tokenProvider != nil {
		t, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
		token = t
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gh != nil && token == c.token {
		return c.gh, nil
	}

	client := gh.NewClient(c.httpClient(token))
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, ErrInvalidBaseURL
	}
	client.BaseURL = base

	if c.gh != nil {
		logger.Debug("github: token changed, rebuilding client")
	}
	c.gh = client
	c.token = token
	return client, nil
}

// httpClient returns a client that attaches token as a bearer credential,
// or a plain client when token is empty.
func (c *Client) httpClient(token string) *http.Client {
	base := c.cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	if token == "" {
		return &http.Client{
			Transport: base.Transport,
			Timeout:   c.cfg.Timeout,
		}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: "Bearer"},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = c.cfg.Timeout
	return tc
}

// SearchUsers returns one page of users matching query.
func (c *Client) SearchUsers(
	ctx context.Context, query string, page, perPage int,
) (domain.Page[domain.User], error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	if err := c.rateLimiter.Wait(ctx, ResourceSearch); err != nil {
		return domain.Page[domain.User]{}, c.wrapError(err, domain.OpSearchUsers)
	}

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}
	result, resp, err := client.Search.Users(ctx, query, opts)
	if err != nil {
		return domain.Page[domain.User]{}, c.wrapError(err, domain.OpSearchUsers)
	}
	c.updateRateLimitFromResponse(resp)

	users := make([]domain.User, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, toUser(u))
	}

	return domain.Page[domain.User]{
		Number:  page,
		Items:   users,
		Total:   result.GetTotal(),
		HasMore: hasNext(resp),
	}, nil
}

// ListRepositories returns one page of login's repositories, most recently
// updated first.
func (c *Client) ListRepositories(
	ctx context.Context, login string, page, perPage int,
) (domain.Page[domain.Repository], error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return domain.Page[domain.Repository]{}, err
	}

	if err := c.rateLimiter.Wait(ctx, ResourceCore); err != nil {
		return domain.Page[domain.Repository]{}, c.wrapError(err, domain.OpListRepositories)
	}

	opts := &gh.RepositoryListByUserOptions{
		Sort:        RepositorySort,
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}
	repos, resp, err := client.Repositories.ListByUser(ctx, login, opts)
	if err != nil {
		return domain.Page[domain.Repository]{}, c.wrapError(err, domain.OpListRepositories)
	}
	c.updateRateLimitFromResponse(resp)
	logger.Debug("github: %s repositories page %d, last page %d",
		login, page, PageOf(resp.Header.Get("Link"), "last"))

	items := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		items = append(items, toRepository(r))
	}

	return domain.Page[domain.Repository]{
		Number:  page,
		Items:   items,
		HasMore: hasNext(resp),
	}, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// BaseURL returns the effective API root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// hasNext reports whether the Link header advertises a next page.
func hasNext(resp *gh.Response) bool {
	if resp == nil || resp.Response == nil {
		return false
	}
	return HasNextPage(resp.Header.Get("Link"))
}

func toUser(u *gh.User) domain.User {
	return domain.User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		URL:       u.GetURL(),
		HTMLURL:   u.GetHTMLURL(),
		AvatarURL: u.GetAvatarURL(),
	}
}

func toRepository(r *gh.Repository) domain.Repository {
	return domain.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.Description,
		Stars:       r.GetStargazersCount(),
		HTMLURL:     r.GetHTMLURL(),
	}
}
