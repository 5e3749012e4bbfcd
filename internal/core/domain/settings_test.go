package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "https://api.github.com/", s.GitHub.BaseURL)
	assert.Empty(t, s.GitHub.Token)
	assert.False(t, s.GitHub.HasToken())
	assert.Equal(t, 500*time.Millisecond, s.Search.Debounce)
	assert.Equal(t, 30, s.Search.PerPage)
	assert.Equal(t, 1000, s.Search.ResultWindowCap)
	assert.Equal(t, 5, s.Repos.PerPage)
	assert.Equal(t, 32, s.Repos.CacheSize)
	assert.Equal(t, 5*time.Minute, s.Repos.CacheTTL)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
}

func TestSettings_Normalize(t *testing.T) {
	t.Run("zero value takes defaults", func(t *testing.T) {
		var s Settings
		s.Normalize()

		want := DefaultSettings()
		want.Repos.CacheSize = 0 // zero disables the cache
		assert.Equal(t, want, s)
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		s := Settings{
			Search: SearchSettings{Debounce: -time.Second, PerPage: 500, ResultWindowCap: -1},
			Repos:  RepoSettings{PerPage: -3, CacheSize: -1, CacheTTL: -time.Minute},
		}
		s.Normalize()

		assert.Equal(t, DefaultDebounce, s.Search.Debounce)
		assert.Equal(t, MaxPerPage, s.Search.PerPage)
		assert.Equal(t, DefaultResultWindowCap, s.Search.ResultWindowCap)
		assert.Equal(t, DefaultReposPerPage, s.Repos.PerPage)
		assert.Equal(t, 0, s.Repos.CacheSize)
		assert.Equal(t, DefaultRepoCacheTTL, s.Repos.CacheTTL)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		s := Settings{
			GitHub:         GitHubSettings{Token: "t", BaseURL: "https://ghe.example.com/api/v3/"},
			Search:         SearchSettings{Debounce: time.Second, PerPage: 10, ResultWindowCap: 200},
			Repos:          RepoSettings{PerPage: 20, CacheSize: 4, CacheTTL: time.Minute},
			RequestTimeout: 3 * time.Second,
		}
		want := s
		s.Normalize()

		assert.Equal(t, want, s)
	})
}

func TestGitHubSettings_MaskedToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", ""},
		{"abc", "****"},
		{"abcd", "****"},
		{"ghp_1234567890", "****7890"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, GitHubSettings{Token: tt.token}.MaskedToken())
		})
	}
}
