// Package domain defines the core business entities for portal search.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - News, Material, Ebook, Event, Supplier, Foundry: typed content items
//   - Snapshots: one point-in-time view of all six collections
//   - SearchResult: the unified, type-tagged result shape
//   - SearchView: the published state of a live search
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
