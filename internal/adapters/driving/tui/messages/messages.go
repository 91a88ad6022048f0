// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// SessionOpened carries the live search session opened for the search view.
type SessionOpened struct {
	Session driving.SearchSession
	Err     error
}

// ViewPublished carries a view published by the live search session.
type ViewPublished struct {
	View domain.SearchView
}

// SessionClosed signals that the live session stopped publishing.
type SessionClosed struct{}

// ResultSelected is sent when a search result is opened for details.
type ResultSelected struct {
	Result domain.SearchResult
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the live search view.
	ViewSearch
	// ViewSources lists the collections and their sizes.
	ViewSources
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewSources:
		return "sources"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CountsLoaded carries the per-collection item counts.
type CountsLoaded struct {
	Counts map[domain.ContentType]int
	Err    error
}

// SourcesRefreshed signals that a refresh of the external sources finished.
type SourcesRefreshed struct {
	Err error
}
