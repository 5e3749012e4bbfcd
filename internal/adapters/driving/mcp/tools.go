package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/paging"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// SearchUsersInput is the input schema for the search_users tool.
type SearchUsersInput struct {
	Query   string `json:"query" jsonschema:"GitHub user search query, at least 3 characters"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"users per page, at most 100 (default 30)"`
}

// SearchUsersOutput is the output schema for the search_users tool.
type SearchUsersOutput struct {
	Users      []UserOutput `json:"users"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	HasMore    bool         `json:"has_more"`
}

// UserOutput is a single user.
type UserOutput struct {
	Login   string `json:"login"`
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url,omitempty"`
}

// ListRepositoriesInput is the input schema for the list_repositories tool.
type ListRepositoriesInput struct {
	Login   string `json:"login" jsonschema:"GitHub user login"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"repositories per page, at most 100 (default 5)"`
}

// ListRepositoriesOutput is the output schema for the list_repositories tool.
type ListRepositoriesOutput struct {
	Login        string             `json:"login"`
	Repositories []RepositoryOutput `json:"repositories"`
	Page         int                `json:"page"`
	HasMore      bool               `json:"has_more"`
}

// RepositoryOutput is a single repository.
type RepositoryOutput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars"`
	HTMLURL     string `json:"html_url"`
}

// Tool names.
const (
	toolSearchUsers      = "search_users"
	toolListRepositories = "list_repositories"
)

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolSearchUsers,
		Description: "Search GitHub users by login, name or email",
	}, s.handleSearchUsers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolListRepositories,
		Description: "List a GitHub user's public repositories, most recently updated first",
	}, s.handleListRepositories)
}

// handleSearchUsers handles the search_users tool invocation.
func (s *Server) handleSearchUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchUsersInput,
) (*mcp.CallToolResult, SearchUsersOutput, error) {
	page := pageOrFirst(input.Page)
	perPage := perPageOrDefault(input.PerPage, s.settings.Search.PerPage)

	result, err := s.ports.Directory.SearchUsers(ctx, input.Query, page, perPage)
	if err != nil {
		logger.Debug("mcp: search_users %q failed (%s): %v", input.Query, domain.KindOf(err), err)
		return nil, SearchUsersOutput{}, err
	}

	output := SearchUsersOutput{
		Users:      make([]UserOutput, len(result.Items)),
		TotalCount: result.Total,
		Page:       page,
		HasMore:    page < paging.MaxPages(result.Total, perPage, s.settings.Search.ResultWindowCap),
	}
	for i, u := range result.Items {
		output.Users[i] = UserOutput{Login: u.Login, ID: u.ID, HTMLURL: u.HTMLURL}
	}

	return nil, output, nil
}

// handleListRepositories handles the list_repositories tool invocation.
func (s *Server) handleListRepositories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRepositoriesInput,
) (*mcp.CallToolResult, ListRepositoriesOutput, error) {
	page := pageOrFirst(input.Page)
	perPage := perPageOrDefault(input.PerPage, s.settings.Repos.PerPage)

	result, err := s.ports.Directory.ListRepositories(ctx, input.Login, page, perPage)
	if err != nil {
		logger.Debug("mcp: list_repositories %q failed (%s): %v", input.Login, domain.KindOf(err), err)
		return nil, ListRepositoriesOutput{}, err
	}

	return nil, ListRepositoriesOutput{
		Login:        input.Login,
		Repositories: repositoryOutputs(result.Items),
		Page:         page,
		HasMore:      result.HasMore,
	}, nil
}

func repositoryOutputs(repos []domain.Repository) []RepositoryOutput {
	out := make([]RepositoryOutput, len(repos))
	for i, r := range repos {
		out[i] = RepositoryOutput{
			Name:        r.Name,
			Description: r.DescriptionText(),
			Stars:       r.Stars,
			HTMLURL:     r.HTMLURL,
		}
	}
	return out
}

func pageOrFirst(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func perPageOrDefault(perPage, def int) int {
	if perPage <= 0 {
		return def
	}
	if perPage > domain.MaxPerPage {
		return domain.MaxPerPage
	}
	return perPage
}
