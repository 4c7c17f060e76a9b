package mcp

import (
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// SearchProvider answers searches and result metas.
	SearchProvider driving.SearchProvider

	// Index rebuilds the library index. Optional.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.SearchProvider == nil {
		return ErrMissingSearchProvider
	}
	return nil
}
