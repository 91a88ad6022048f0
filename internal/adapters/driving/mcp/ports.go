package mcp

import (
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs one-shot searches.
	Search driving.SearchService

	// Source reports per-collection item counts. Optional.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
