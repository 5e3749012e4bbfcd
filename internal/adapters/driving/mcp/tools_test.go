package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

func TestServer_handleSearchUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns users", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			searchUsers: func(query string, page, perPage int) (domain.Page[domain.User], error) {
				assert.Equal(t, "octo", query)
				assert.Equal(t, 1, page)
				assert.Equal(t, domain.DefaultUsersPerPage, perPage)
				return domain.Page[domain.User]{
					Number: page,
					Items: []domain.User{
						{ID: 1, Login: "octocat", HTMLURL: "https://github.com/octocat"},
					},
					Total: 1,
				}, nil
			},
		})

		_, output, err := server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "octo"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.TotalCount)
		assert.Equal(t, 1, output.Page)
		assert.False(t, output.HasMore)
		require.Len(t, output.Users, 1)
		assert.Equal(t, "octocat", output.Users[0].Login)
		assert.Equal(t, int64(1), output.Users[0].ID)
		assert.Equal(t, "https://github.com/octocat", output.Users[0].HTMLURL)
	})

	t.Run("has more while under the result window", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			searchUsers: func(_ string, page, _ int) (domain.Page[domain.User], error) {
				return domain.Page[domain.User]{Number: page, Total: 5000}, nil
			},
		})

		_, output, err := server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "octo", Page: 33, PerPage: 30})
		require.NoError(t, err)
		assert.True(t, output.HasMore)

		// 1000 / 30 rounds up to 34 pages.
		_, output, err = server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "octo", Page: 34, PerPage: 30})
		require.NoError(t, err)
		assert.False(t, output.HasMore)
	})

	t.Run("per page is clamped", func(t *testing.T) {
		var got int
		server := newTestServer(t, &mockDirectoryService{
			searchUsers: func(_ string, page, perPage int) (domain.Page[domain.User], error) {
				got = perPage
				return domain.Page[domain.User]{Number: page}, nil
			},
		})

		_, _, err := server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "octo", PerPage: 500})

		require.NoError(t, err)
		assert.Equal(t, domain.MaxPerPage, got)
	})

	t.Run("negative page becomes first", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{})

		_, output, err := server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "octo", Page: -2})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Page)
	})

	t.Run("returns classified error", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			searchUsers: func(string, int, int) (domain.Page[domain.User], error) {
				return domain.Page[domain.User]{}, domain.Classify(domain.OpSearchUsers, http.StatusServiceUnavailable, nil, "")
			},
		})

		_, _, err := server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "octo"})

		require.Error(t, err)
		assert.Equal(t, domain.KindServiceUnavailable, domain.KindOf(err))
		assert.Contains(t, err.Error(), "temporarily unavailable")
	})

	t.Run("too short query", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			searchUsers: func(string, int, int) (domain.Page[domain.User], error) {
				return domain.Page[domain.User]{}, domain.ErrQueryTooShort
			},
		})

		_, _, err := server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "ab"})

		assert.ErrorIs(t, err, domain.ErrQueryTooShort)
	})
}

func TestServer_handleListRepositories(t *testing.T) {
	ctx := context.Background()
	desc := "A repo"

	t.Run("returns repositories", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			listRepositories: func(login string, page, perPage int) (domain.Page[domain.Repository], error) {
				assert.Equal(t, "octocat", login)
				assert.Equal(t, 2, page)
				assert.Equal(t, domain.DefaultReposPerPage, perPage)
				return domain.Page[domain.Repository]{
					Number: page,
					Items: []domain.Repository{
						{ID: 1, Name: "hello", Description: &desc, Stars: 3, HTMLURL: "https://github.com/octocat/hello"},
						{ID: 2, Name: "bare"},
					},
					HasMore: true,
				}, nil
			},
		})

		_, output, err := server.handleListRepositories(ctx, nil, ListRepositoriesInput{Login: "octocat", Page: 2})

		require.NoError(t, err)
		assert.Equal(t, "octocat", output.Login)
		assert.Equal(t, 2, output.Page)
		assert.True(t, output.HasMore)
		require.Len(t, output.Repositories, 2)
		assert.Equal(t, "A repo", output.Repositories[0].Description)
		assert.Equal(t, 3, output.Repositories[0].Stars)
		assert.Empty(t, output.Repositories[1].Description)
	})

	t.Run("returns error", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			listRepositories: func(string, int, int) (domain.Page[domain.Repository], error) {
				return domain.Page[domain.Repository]{}, errors.New("boom")
			},
		})

		_, _, err := server.handleListRepositories(ctx, nil, ListRepositoriesInput{Login: "octocat"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServer_handleRepositoriesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first page as json", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{
			listRepositories: func(login string, page, _ int) (domain.Page[domain.Repository], error) {
				assert.Equal(t, 1, page)
				return domain.Page[domain.Repository]{
					Number: page,
					Items:  []domain.Repository{{ID: 1, Name: login + "-repo"}},
				}, nil
			},
		})

		uri := "ghfinder://users/octocat/repositories"
		result, err := server.handleRepositoriesResource(ctx, &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: uri},
		})

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var out ListRepositoriesOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &out))
		assert.Equal(t, "octocat", out.Login)
		require.Len(t, out.Repositories, 1)
		assert.Equal(t, "octocat-repo", out.Repositories[0].Name)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{})

		_, err := server.handleRepositoriesResource(ctx, &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "ghfinder://users/octocat"},
		})

		assert.Error(t, err)
	})
}

func TestServer_handleSettingsResource(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.GitHub.Token = "ghp_secret1234"

	server, err := NewServer(&Ports{Directory: &mockDirectoryService{}, Settings: settings})
	require.NoError(t, err)

	result, err := server.handleSettingsResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "ghfinder://settings"},
	})

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	text := result.Contents[0].Text
	assert.NotContains(t, text, "ghp_secret")
	assert.Contains(t, text, "****1234")
	assert.Contains(t, text, `"users_per_page": 30`)
	assert.Contains(t, text, `"debounce": "500ms"`)
}

func TestExtractLogin(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"ghfinder://users/octocat/repositories", "octocat"},
		{"ghfinder://users/a-b/repositories", "a-b"},
		{"ghfinder://users//repositories", ""},
		{"ghfinder://users/a/b/repositories", ""},
		{"ghfinder://users/octocat", ""},
		{"other://users/octocat/repositories", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLogin(tt.uri))
		})
	}
}
