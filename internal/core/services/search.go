package services

import (
	"context"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
	"github.com/custodia-labs/portal-search/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService provides live and one-shot search over the portal
// collections.
type SearchService struct {
	sources Sources
}

// NewSearchService creates a new search service.
// Any source in sources may be nil.
func NewSearchService(sources Sources) *SearchService {
	return &SearchService{sources: sources}
}

// Search opens a live session for query. The session is closed when ctx
// is cancelled; callers that pass a context that is never cancelled must
// Close the session themselves.
func (s *SearchService) Search(ctx context.Context, query string) (driving.SearchSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Live Search")
	logger.Debug("Query: %q", query)

	session := NewSession(s.sources, query)
	session.Start()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				session.Close()
			case <-session.Done():
			}
		}()
	}

	return session, nil
}

// Find matches query once against the current snapshots.
func (s *SearchService) Find(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	snaps := s.sources.Snapshots()
	logger.Debug("Snapshot sizes: %v", snaps.Counts())

	results := Match(query, snaps)
	logger.Debug("Matched: %d results", len(results))

	if len(opts.Types) > 0 {
		results = filterByType(results, opts)
		logger.Debug("After type filter %v: %d results", opts.Types, len(results))
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}
