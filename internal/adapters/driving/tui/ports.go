// Package tui provides an interactive terminal user interface for ghfinder.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ghfinder/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driving"
)

// Ports aggregates everything the TUI needs from the rest of the program.
type Ports struct {
	// Directory searches users and lists repositories.
	Directory driving.DirectoryService

	// Settings tunes debounce, page sizes and the repository cache.
	Settings domain.Settings

	// Quota reports the upstream request budget. Optional.
	Quota search.QuotaFunc
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(directory driving.DirectoryService, settings domain.Settings) *Ports {
	return &Ports{
		Directory: directory,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	return nil
}
