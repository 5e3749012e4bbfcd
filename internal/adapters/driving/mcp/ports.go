package mcp

import (
	"github.com/custodia-labs/ghfinder/internal/core/domain"
	"github.com/custodia-labs/ghfinder/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server needs.
type Ports struct {
	// Directory searches users and lists repositories.
	Directory driving.DirectoryService

	// Settings supplies page-size defaults and is exposed as a resource.
	// Zero values take defaults.
	Settings domain.Settings
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Directory == nil {
		return ErrMissingDirectoryService
	}
	return nil
}
