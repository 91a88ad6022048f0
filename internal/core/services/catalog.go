package services

import (
	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// entry describes how one collection is matched and normalised.
type entry[T any] struct {
	// Type is stamped on every result produced from this collection.
	Type domain.ContentType

	// Fields returns the free-text fields tested against the query.
	Fields func(T) []string

	// Normalize projects an item onto the unified result shape.
	Normalize func(T) domain.SearchResult
}

// group is an entry bound to its slot in domain.Snapshots.
type group struct {
	Type  domain.ContentType
	match func(needle string, snaps *domain.Snapshots) []domain.SearchResult
}

func bind[T any](e entry[T], pick func(*domain.Snapshots) []T) group {
	return group{
		Type: e.Type,
		match: func(needle string, snaps *domain.Snapshots) []domain.SearchResult {
			items := pick(snaps)
			var out []domain.SearchResult
			for i := range items {
				if !containsAny(e.Fields(items[i]), needle) {
					continue
				}
				r := e.Normalize(items[i])
				r.Type = e.Type
				out = append(out, r)
			}
			return out
		},
	}
}

// catalog lists every collection in result priority order.
var catalog = []group{
	bind(entry[domain.News]{
		Type: domain.ContentNews,
		Fields: func(n domain.News) []string {
			return []string{n.Title, n.Excerpt, n.Content}
		},
		Normalize: normalizeNews,
	}, func(s *domain.Snapshots) []domain.News { return s.News }),

	bind(entry[domain.Material]{
		Type: domain.ContentMaterial,
		Fields: func(m domain.Material) []string {
			return []string{m.Title, m.Description}
		},
		Normalize: normalizeMaterial,
	}, func(s *domain.Snapshots) []domain.Material { return s.Materials }),

	bind(entry[domain.Ebook]{
		Type: domain.ContentEbook,
		Fields: func(e domain.Ebook) []string {
			return []string{e.Title, e.Author, e.Description}
		},
		Normalize: normalizeEbook,
	}, func(s *domain.Snapshots) []domain.Ebook { return s.Ebooks }),

	bind(entry[domain.Event]{
		Type: domain.ContentEvent,
		Fields: func(e domain.Event) []string {
			return []string{e.Title, e.Description, e.Location}
		},
		Normalize: normalizeEvent,
	}, func(s *domain.Snapshots) []domain.Event { return s.Events }),

	bind(entry[domain.Supplier]{
		Type: domain.ContentSupplier,
		Fields: func(s domain.Supplier) []string {
			return []string{s.Name, s.Specialty, s.Description}
		},
		Normalize: normalizeSupplier,
	}, func(s *domain.Snapshots) []domain.Supplier { return s.Suppliers }),

	bind(entry[domain.Foundry]{
		Type: domain.ContentFoundry,
		Fields: func(f domain.Foundry) []string {
			return []string{f.Name, f.Specialty, f.Description}
		},
		Normalize: normalizeFoundry,
	}, func(s *domain.Snapshots) []domain.Foundry { return s.Foundries }),
}
