package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
)

// mockDirectoryService implements driving.DirectoryService for testing.
type mockDirectoryService struct {
	searchUsers      func(query string, page, perPage int) (domain.Page[domain.User], error)
	listRepositories func(login string, page, perPage int) (domain.Page[domain.Repository], error)
}

func (m *mockDirectoryService) SearchUsers(
	_ context.Context, query string, page, perPage int,
) (domain.Page[domain.User], error) {
	if m.searchUsers != nil {
		return m.searchUsers(query, page, perPage)
	}
	return domain.Page[domain.User]{Number: page}, nil
}

func (m *mockDirectoryService) ListRepositories(
	_ context.Context, login string, page, perPage int,
) (domain.Page[domain.Repository], error) {
	if m.listRepositories != nil {
		return m.listRepositories(login, page, perPage)
	}
	return domain.Page[domain.Repository]{Number: page}, nil
}

func newTestServer(t *testing.T, svc *mockDirectoryService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Directory: svc})
	require.NoError(t, err)
	return server
}

func TestNewServer(t *testing.T) {
	t.Run("nil directory service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDirectoryService)
	})

	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrMissingDirectoryService)
		assert.Nil(t, server)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{})
		assert.NotNil(t, server)
	})

	t.Run("zero settings take defaults", func(t *testing.T) {
		server := newTestServer(t, &mockDirectoryService{})
		assert.Equal(t, domain.DefaultUsersPerPage, server.settings.Search.PerPage)
		assert.Equal(t, domain.DefaultReposPerPage, server.settings.Repos.PerPage)
		assert.Equal(t, domain.DefaultResultWindowCap, server.settings.Search.ResultWindowCap)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil directory service returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingDirectoryService)
	})

	t.Run("directory is enough", func(t *testing.T) {
		ports := &Ports{Directory: &mockDirectoryService{}}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_Instructions(t *testing.T) {
	assert.Contains(t, instructions, toolSearchUsers)
	assert.Contains(t, instructions, toolListRepositories)
	assert.Contains(t, instructions, fmt.Sprint(domain.MinQueryLength))
	assert.Contains(t, instructions, fmt.Sprint(domain.DefaultResultWindowCap))
}

func TestServer_Handler(t *testing.T) {
	server := newTestServer(t, &mockDirectoryService{})

	assert.NotNil(t, server.Handler())
}

func TestServer_RunHTTP_CancelledContext(t *testing.T) {
	server := newTestServer(t, &mockDirectoryService{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- server.RunHTTP(ctx, "127.0.0.1:0") }()

	assert.NoError(t, <-errCh)
}
