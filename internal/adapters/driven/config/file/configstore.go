package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// ErrInvalidConfig indicates the configuration file could not be interpreted.
var ErrInvalidConfig = errors.New("invalid configuration")

// fileConfig mirrors the on-disk TOML layout.
type fileConfig struct {
	GitHub  githubSection  `toml:"github"`
	Search  searchSection  `toml:"search"`
	Repos   reposSection   `toml:"repos"`
	Request requestSection `toml:"request"`
}

type githubSection struct {
	Token   string `toml:"token,omitempty"`
	BaseURL string `toml:"base_url,omitempty"`
}

type searchSection struct {
	DebounceMS      int `toml:"debounce_ms,omitempty"`
	PerPage         int `toml:"per_page,omitempty"`
	ResultWindowCap int `toml:"result_window_cap,omitempty"`
}

type reposSection struct {
	PerPage   int    `toml:"per_page,omitempty"`
	CacheSize int    `toml:"cache_size,omitempty"`
	CacheTTL  string `toml:"cache_ttl,omitempty"`
}

type requestSection struct {
	Timeout string `toml:"timeout,omitempty"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the ghfinder config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.ghfinder/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".ghfinder")
	}
	return &ConfigStore{filePath: filepath.Join(configDir, ConfigFileName)}, nil
}

// NewConfigStoreAt creates a config store for an explicit file path.
func NewConfigStoreAt(path string) *ConfigStore {
	return &ConfigStore{filePath: path}
}

// Load reads settings from the TOML file. A missing file yields defaults.
func (s *ConfigStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, use defaults
			return settings, nil
		}
		return settings, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return settings, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, s.filePath, err)
	}

	if err := fc.apply(&settings); err != nil {
		return settings, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, s.filePath, err)
	}
	settings.Normalize()
	return settings, nil
}

// Save writes settings to the TOML file, creating its directory if needed.
func (s *ConfigStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fromSettings(settings))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// apply overlays the values present in the file onto settings.
func (fc fileConfig) apply(settings *domain.Settings) error {
	if fc.GitHub.Token != "" {
		settings.GitHub.Token = fc.GitHub.Token
	}
	if fc.GitHub.BaseURL != "" {
		settings.GitHub.BaseURL = fc.GitHub.BaseURL
	}
	if fc.Search.DebounceMS != 0 {
		settings.Search.Debounce = time.Duration(fc.Search.DebounceMS) * time.Millisecond
	}
	if fc.Search.PerPage != 0 {
		settings.Search.PerPage = fc.Search.PerPage
	}
	if fc.Search.ResultWindowCap != 0 {
		settings.Search.ResultWindowCap = fc.Search.ResultWindowCap
	}
	if fc.Repos.PerPage != 0 {
		settings.Repos.PerPage = fc.Repos.PerPage
	}
	if fc.Repos.CacheSize != 0 {
		settings.Repos.CacheSize = fc.Repos.CacheSize
	}
	if fc.Repos.CacheTTL != "" {
		d, err := time.ParseDuration(fc.Repos.CacheTTL)
		if err != nil {
			return fmt.Errorf("repos.cache_ttl: %w", err)
		}
		settings.Repos.CacheTTL = d
	}
	if fc.Request.Timeout != "" {
		d, err := time.ParseDuration(fc.Request.Timeout)
		if err != nil {
			return fmt.Errorf("request.timeout: %w", err)
		}
		settings.RequestTimeout = d
	}
	return nil
}

func fromSettings(s domain.Settings) fileConfig {
	return fileConfig{
		GitHub: githubSection{
			Token:   s.GitHub.Token,
			BaseURL: s.GitHub.BaseURL,
		},
		Search: searchSection{
			DebounceMS:      int(s.Search.Debounce / time.Millisecond),
			PerPage:         s.Search.PerPage,
			ResultWindowCap: s.Search.ResultWindowCap,
		},
		Repos: reposSection{
			PerPage:   s.Repos.PerPage,
			CacheSize: s.Repos.CacheSize,
			CacheTTL:  formatDuration(s.Repos.CacheTTL),
		},
		Request: requestSection{
			Timeout: formatDuration(s.RequestTimeout),
		},
	}
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}
