package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{
				{ID: "n1", Title: "Preço do alumínio sobe", Type: domain.ContentNews, Summary: "Alta"},
				{ID: "s1", Title: "AlumiBrasil", Type: domain.ContentSupplier, Specialty: "Alumínio"},
			},
		}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "alum"})

		require.NoError(t, err)
		assert.Equal(t, "alum", mockSearch.lastQuery)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 2, output.Total)
		require.Len(t, output.Results, 2)
		assert.Equal(t, domain.ContentNews, output.Results[0].Type)
		assert.Equal(t, "AlumiBrasil", output.Results[1].Title)
	})

	t.Run("limit truncates but reports total", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{{ID: "1"}, {ID: "2"}, {ID: "3"}},
		}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "al", Limit: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 3, output.Total)
	})

	t.Run("no matches returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "x"})

		require.NoError(t, err)
		assert.NotNil(t, output.Results)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("types become search options", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "alum", Types: []string{"events", "foundry"}})

		require.NoError(t, err)
		assert.Equal(t, []domain.ContentType{domain.ContentEvent, domain.ContentFoundry}, mockSearch.lastOpts.Types)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "alum", Types: []string{"videos"}})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{
			err: errors.New("search failed"),
		}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}
