package domain

import "time"

// Default values for Settings.
const (
	DefaultBaseURL         = "https://api.github.com/"
	DefaultDebounce        = 500 * time.Millisecond
	DefaultUsersPerPage    = 30
	DefaultReposPerPage    = 5
	MaxPerPage             = 100
	DefaultResultWindowCap = 1000
	DefaultRequestTimeout  = 10 * time.Second
	DefaultRepoCacheSize   = 32
	DefaultRepoCacheTTL    = 5 * time.Minute
)

// GitHubSettings holds upstream API configuration.
type GitHubSettings struct {
	// Token is the optional bearer credential. Never obtained or refreshed here.
	Token string

	// BaseURL is the REST API root (GitHub Enterprise or tests).
	BaseURL string
}

// HasToken returns true if a bearer credential is configured.
func (g GitHubSettings) HasToken() bool {
	return g.Token != ""
}

// SearchSettings holds top-level user search configuration.
type SearchSettings struct {
	// Debounce is the settle delay for search-as-you-type.
	Debounce time.Duration

	// PerPage is the number of users per page.
	PerPage int

	// ResultWindowCap is the upstream ceiling on reachable results.
	ResultWindowCap int
}

// RepoSettings holds nested repository list configuration.
type RepoSettings struct {
	// PerPage is the number of repositories per page.
	PerPage int

	// CacheSize bounds how many users' repository lists stay cached.
	CacheSize int

	// CacheTTL is how long a cached repository list is reused.
	CacheTTL time.Duration
}

// Settings holds all application settings.
type Settings struct {
	GitHub GitHubSettings
	Search SearchSettings
	Repos  RepoSettings

	// RequestTimeout bounds every outbound request.
	RequestTimeout time.Duration
}

// DefaultSettings returns settings with the defaults of the public GitHub API.
func DefaultSettings() Settings {
	return Settings{
		GitHub: GitHubSettings{
			BaseURL: DefaultBaseURL,
		},
		Search: SearchSettings{
			Debounce:        DefaultDebounce,
			PerPage:         DefaultUsersPerPage,
			ResultWindowCap: DefaultResultWindowCap,
		},
		Repos: RepoSettings{
			PerPage:   DefaultReposPerPage,
			CacheSize: DefaultRepoCacheSize,
			CacheTTL:  DefaultRepoCacheTTL,
		},
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Normalize replaces zero or out-of-range values with defaults.
func (s *Settings) Normalize() {
	d := DefaultSettings()
	if s.GitHub.BaseURL == "" {
		s.GitHub.BaseURL = d.GitHub.BaseURL
	}
	if s.Search.Debounce <= 0 {
		s.Search.Debounce = d.Search.Debounce
	}
	s.Search.PerPage = clampPerPage(s.Search.PerPage, d.Search.PerPage)
	if s.Search.ResultWindowCap <= 0 {
		s.Search.ResultWindowCap = d.Search.ResultWindowCap
	}
	s.Repos.PerPage = clampPerPage(s.Repos.PerPage, d.Repos.PerPage)
	if s.Repos.CacheSize < 0 {
		s.Repos.CacheSize = 0
	}
	if s.Repos.CacheTTL <= 0 {
		s.Repos.CacheTTL = d.Repos.CacheTTL
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = d.RequestTimeout
	}
}

// MaskedToken returns the token with all but the last four characters hidden.
func (g GitHubSettings) MaskedToken() string {
	if len(g.Token) <= 4 {
		if g.Token == "" {
			return ""
		}
		return "****"
	}
	return "****" + g.Token[len(g.Token)-4:]
}

func clampPerPage(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > MaxPerPage {
		return MaxPerPage
	}
	return v
}
