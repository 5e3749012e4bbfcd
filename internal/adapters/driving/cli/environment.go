package cli

import (
	"fmt"
	"os"

	"github.com/custodia-labs/ghfinder/internal/adapters/driven/auth"
	"github.com/custodia-labs/ghfinder/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghfinder/internal/connectors/github"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driving"
	"github.com/custodia-labs/ghfinder/internal/core/services"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// TokenEnv is the environment variable consulted for a GitHub token.
const TokenEnv = "GITHUB_TOKEN"

// Environment is the wired application shared by every command.
type Environment struct {
	// Settings are the effective settings, token resolved.
	Settings domain.Settings

	// Store is the configuration file. Nil in tests.
	Store *file.ConfigStore

	// Tokens is the reloadable bearer credential used by Client.
	Tokens *auth.StaticTokenProvider

	// Client is the GitHub adapter. Nil in tests.
	Client *github.Client

	// Directory is the service every driving adapter talks to.
	Directory driving.DirectoryService
}

// newEnvironment builds the Environment. Tests replace it.
var newEnvironment = defaultEnvironment

func defaultEnvironment() (*Environment, error) {
	store, err := configStore()
	if err != nil {
		return nil, err
	}

	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settings.GitHub.Token = resolveToken(settings.GitHub.Token)
	settings.Normalize()

	tokens := auth.NewStaticTokenProvider(settings.GitHub.Token)
	client, err := github.NewClient(tokens, github.ConfigFromSettings(settings))
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	logger.Debug("config: %s (authenticated=%t, base_url=%s)",
		store.Path(), settings.GitHub.HasToken(), settings.GitHub.BaseURL)

	return &Environment{
		Settings:  settings,
		Store:     store,
		Tokens:    tokens,
		Client:    client,
		Directory: services.NewDirectoryService(client, settings),
	}, nil
}

func configStore() (*file.ConfigStore, error) {
	if configPath != "" {
		return file.NewConfigStoreAt(configPath), nil
	}
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("locating config: %w", err)
	}
	return store, nil
}

// resolveToken applies the flag and environment overrides to the file token.
func resolveToken(fileToken string) string {
	return auth.ResolveToken(tokenFlag, os.Getenv(TokenEnv), fileToken)
}
