package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for ghfinder resources.
const uriScheme = "ghfinder://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective search settings (token masked)",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "users/{login}/repositories",
		Name:        "user-repositories",
		Description: "First page of a user's public repositories",
		MIMEType:    "application/json",
	}, s.handleRepositoriesResource)
}

type settingsInfo struct {
	BaseURL         string `json:"base_url"`
	Token           string `json:"token,omitempty"`
	Debounce        string `json:"debounce"`
	UsersPerPage    int    `json:"users_per_page"`
	ResultWindowCap int    `json:"result_window_cap"`
	ReposPerPage    int    `json:"repos_per_page"`
	RepoCacheSize   int    `json:"repo_cache_size"`
	RepoCacheTTL    string `json:"repo_cache_ttl"`
	RequestTimeout  string `json:"request_timeout"`
}

// handleSettingsResource returns the settings the server was started with.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := settingsInfo{
		BaseURL:         s.settings.GitHub.BaseURL,
		Token:           s.settings.GitHub.MaskedToken(),
		Debounce:        s.settings.Search.Debounce.String(),
		UsersPerPage:    s.settings.Search.PerPage,
		ResultWindowCap: s.settings.Search.ResultWindowCap,
		ReposPerPage:    s.settings.Repos.PerPage,
		RepoCacheSize:   s.settings.Repos.CacheSize,
		RepoCacheTTL:    s.settings.Repos.CacheTTL.Round(time.Second).String(),
		RequestTimeout:  s.settings.RequestTimeout.String(),
	}
	return jsonResource(req.Params.URI, info)
}

// handleRepositoriesResource returns the first page of a user's repositories.
func (s *Server) handleRepositoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	login := extractLogin(req.Params.URI)
	if login == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Directory.ListRepositories(ctx, login, 1, s.settings.Repos.PerPage)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	return jsonResource(req.Params.URI, ListRepositoriesOutput{
		Login:        login,
		Repositories: repositoryOutputs(result.Items),
		Page:         1,
		HasMore:      result.HasMore,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLogin extracts the login from a URI like ghfinder://users/{login}/repositories.
func extractLogin(uri string) string {
	const prefix = uriScheme + "users/"
	const suffix = "/repositories"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	login := strings.TrimSuffix(uri, suffix)
	if strings.Contains(login, "/") {
		return ""
	}
	return login
}
