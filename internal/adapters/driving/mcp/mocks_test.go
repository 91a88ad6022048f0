package mcp

import (
	"context"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, _ string) (driving.SearchSession, error) {
	return nil, m.err
}

func (m *mockSearchService) Find(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	counts map[domain.ContentType]int
	err    error
}

func (m *mockSourceService) Counts(_ context.Context) (map[domain.ContentType]int, error) {
	return m.counts, m.err
}

func (m *mockSourceService) Refresh(_ context.Context) error {
	return m.err
}
