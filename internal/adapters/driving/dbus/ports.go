package dbus

import (
	"github.com/jnphilipp/papis-search-provider/internal/core/ports/driving"
)

// Ports aggregates the driving ports the bus server dispatches to.
type Ports struct {
	// SearchProvider answers the shell's search requests.
	SearchProvider driving.SearchProvider
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.SearchProvider == nil {
		return ErrMissingSearchProvider
	}
	return nil
}
