package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// MockDirectoryService implements driving.DirectoryService for testing.
type MockDirectoryService struct {
	SearchUsersFunc      func(query string, page, perPage int) (domain.Page[domain.User], error)
	ListRepositoriesFunc func(login string, page, perPage int) (domain.Page[domain.Repository], error)
}

func (m *MockDirectoryService) SearchUsers(
	_ context.Context, query string, page, perPage int,
) (domain.Page[domain.User], error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(query, page, perPage)
	}
	return domain.Page[domain.User]{Number: page}, nil
}

func (m *MockDirectoryService) ListRepositories(
	_ context.Context, login string, page, perPage int,
) (domain.Page[domain.Repository], error) {
	if m.ListRepositoriesFunc != nil {
		return m.ListRepositoriesFunc(login, page, perPage)
	}
	return domain.Page[domain.Repository]{Number: page}, nil
}

// setupTestEnvironment swaps the wired environment for one backed by svc.
func setupTestEnvironment(t *testing.T, svc *MockDirectoryService, settings domain.Settings) {
	t.Helper()
	original := newEnvironment
	newEnvironment = func() (*Environment, error) {
		return &Environment{Settings: settings, Directory: svc}, nil
	}
	t.Cleanup(func() { newEnvironment = original })
}

// execute runs the root command with args and returns everything written.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	verbose, configPath, tokenFlag, logFile = false, "", "", ""
	usersPage, usersPerPage, usersFormat = 1, 0, formatAuto
	reposPage, reposPerPage, reposFormat = 1, 0, formatAuto
	configInitForce = false
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"tui", "users", "repos", "config", "mcp", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config", "token", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag --%s", name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "GITHUB_TOKEN")
	assert.Contains(t, out, "users")
}

func TestRootCmd_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghfinder.log")
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	_, err := execute(t, "--verbose", "--log-file", path, "version")

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ghfinder")
}

func TestRootCmd_LogFileBadPath(t *testing.T) {
	_, err := execute(t, "--log-file", filepath.Join(t.TempDir(), "missing", "x.log"), "version")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening log file")
}

func TestSetVersion(t *testing.T) {
	original := version
	t.Cleanup(func() {
		version = original
		rootCmd.Version = ""
	})

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "1.2.3", rootCmd.Version)
}
