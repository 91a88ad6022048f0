package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// Match returns every item in snaps that contains query in one of its
// searchable fields, normalised and grouped by collection in priority
// order: news, materials, ebooks, events, suppliers, foundries. Within a
// group items keep their snapshot order. There is no scoring and no
// de-duplication across collections.
//
// Queries shorter than domain.MinQueryLength return an empty slice.
// Match never returns nil and never modifies snaps.
func Match(query string, snaps domain.Snapshots) []domain.SearchResult {
	if utf8.RuneCountInString(query) < domain.MinQueryLength {
		return []domain.SearchResult{}
	}

	needle := strings.ToLower(query)
	results := []domain.SearchResult{}
	for _, g := range catalog {
		results = append(results, g.match(needle, &snaps)...)
	}
	return results
}

// containsAny reports whether any non-empty field contains needle.
// needle must already be lower-cased.
func containsAny(fields []string, needle string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// filterByType keeps results whose type passes opts, preserving order.
func filterByType(results []domain.SearchResult, opts domain.SearchOptions) []domain.SearchResult {
	if len(opts.Types) == 0 {
		return results
	}
	filtered := make([]domain.SearchResult, 0, len(results))
	for i := range results {
		if opts.Includes(results[i].Type) {
			filtered = append(filtered, results[i])
		}
	}
	return filtered
}
