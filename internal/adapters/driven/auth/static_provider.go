package auth

import (
	"context"
	"sync"

	"github.com/custodia-labs/ghfinder/internal/core/ports/driven"
	"github.com/custodia-labs/ghfinder/internal/logger"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider provides a configured Personal Access Token.
// The token can be swapped at runtime when the configuration file changes;
// it is never refreshed or obtained here.
type StaticTokenProvider struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenProvider creates a token provider for token.
// An empty token means anonymous access.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken returns the current token.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, nil
}

// IsAuthenticated returns true if a token is set.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token != ""
}

// SetToken replaces the token. It reports whether the value changed.
func (p *StaticTokenProvider) SetToken(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == token {
		return false
	}
	logger.Debug("auth: token replaced (authenticated=%t)", token != "")
	p.token = token
	return true
}
