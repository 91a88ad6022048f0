// Package tui provides an interactive terminal user interface for
// portal-search. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search opens the live search session.
	Search driving.SearchService

	// Source reports collection sizes and refreshes external sources.
	// Optional; the sources view shows an error without it.
	Source driving.SourceService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, source driving.SourceService) *Ports {
	return &Ports{
		Search: search,
		Source: source,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
