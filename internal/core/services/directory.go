package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driven"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driving"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// Ensure DirectoryService implements the interface.
var _ driving.DirectoryService = (*DirectoryService)(nil)

// DirectoryService validates and de-duplicates directory lookups.
//
// Identical concurrent requests (same operation, key, page and page size)
// share a single upstream call.
type DirectoryService struct {
	directory    driven.UserDirectory
	usersPerPage int
	reposPerPage int
	group        singleflight.Group
}

// NewDirectoryService creates a new directory service.
// Per-page defaults are taken from settings.
func NewDirectoryService(directory driven.UserDirectory, settings domain.Settings) *DirectoryService {
	settings.Normalize()
	return &DirectoryService{
		directory:    directory,
		usersPerPage: settings.Search.PerPage,
		reposPerPage: settings.Repos.PerPage,
	}
}

// SearchUsers returns one page of users matching query.
func (s *DirectoryService) SearchUsers(
	ctx context.Context, query string, page, perPage int,
) (domain.Page[domain.User], error) {
	query = domain.NormalizeQuery(query)
	if !domain.QueryQualifies(query) {
		return domain.Page[domain.User]{}, domain.ErrQueryTooShort
	}
	page, perPage = pageArgs(page, perPage, s.usersPerPage)

	logger.Debug("SearchUsers: query=%q page=%d per_page=%d", query, page, perPage)

	key := fmt.Sprintf("users:%s:%d:%d", query, page, perPage)
	v, err := s.do(ctx, key, func() (any, error) {
		return s.directory.SearchUsers(ctx, query, page, perPage)
	})
	if err != nil {
		logger.Debug("SearchUsers failed: %v", err)
		return domain.Page[domain.User]{}, err
	}

	p := v.(domain.Page[domain.User])
	p.Number = page
	logger.Debug("SearchUsers: %d of %d users", len(p.Items), p.Total)
	return p, nil
}

// ListRepositories returns one page of login's repositories.
func (s *DirectoryService) ListRepositories(
	ctx context.Context, login string, page, perPage int,
) (domain.Page[domain.Repository], error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return domain.Page[domain.Repository]{}, domain.ErrEmptyLogin
	}
	page, perPage = pageArgs(page, perPage, s.reposPerPage)

	logger.Debug("ListRepositories: login=%q page=%d per_page=%d", login, page, perPage)

	key := fmt.Sprintf("repos:%s:%d:%d", login, page, perPage)
	v, err := s.do(ctx, key, func() (any, error) {
		return s.directory.ListRepositories(ctx, login, page, perPage)
	})
	if err != nil {
		logger.Debug("ListRepositories failed: %v", err)
		return domain.Page[domain.Repository]{}, err
	}

	p := v.(domain.Page[domain.Repository])
	p.Number = page
	logger.Debug("ListRepositories: %d repositories, has_more=%t", len(p.Items), p.HasMore)
	return p, nil
}

// do runs fn once per key among concurrent callers. A caller whose context
// ends stops waiting and forgets the key so later callers start afresh.
// fn must close over the caller's own context.
func (s *DirectoryService) do(ctx context.Context, key string, fn func() (any, error)) (any, error) {
	ch := s.group.DoChan(key, fn)
	select {
	case <-ctx.Done():
		s.group.Forget(key)
		return nil, domain.NewNetworkError(opForKey(key), ctx.Err())
	case res := <-ch:
		if !res.Shared {
			return res.Val, res.Err
		}
		logger.Debug("Shared in-flight request %s", key)
		// The leader's context ended, not ours.
		if res.Err != nil && ctx.Err() == nil &&
			(errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded)) {
			logger.Debug("Leader of %s gave up (%v), retrying", key, res.Err)
			return fn()
		}
		return res.Val, res.Err
	}
}

func opForKey(key string) domain.Operation {
	if strings.HasPrefix(key, "repos:") {
		return domain.OpListRepositories
	}
	return domain.OpSearchUsers
}

// pageArgs applies the page and page-size defaults.
func pageArgs(page, perPage, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = def
	}
	if perPage > domain.MaxPerPage {
		perPage = domain.MaxPerPage
	}
	return page, perPage
}
