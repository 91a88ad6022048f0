package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

func TestExtractQuery(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		ok       bool
	}{
		{name: "plain query", uri: "portal://search/alum", expected: "alum", ok: true},
		{name: "escaped query", uri: "portal://search/pre%C3%A7o%20do%20a%C3%A7o", expected: "preço do aço", ok: true},
		{name: "empty query", uri: "portal://search/", expected: "", ok: true},
		{name: "invalid prefix", uri: "file://search/alum", expected: "", ok: false},
		{name: "bad escape", uri: "portal://search/%zz", expected: "", ok: false},
		{name: "empty URI", uri: "", expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := extractQuery(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, query)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("portal://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists every collection in priority order", func(t *testing.T) {
		mockSource := &mockSourceService{
			counts: map[domain.ContentType]int{
				domain.ContentNews:    3,
				domain.ContentFoundry: 1,
			},
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Source: mockSource})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("portal://sources"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []sourceInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, len(domain.ContentTypes()))
		assert.Equal(t, domain.ContentNews, infos[0].Type)
		assert.Equal(t, 3, infos[0].Count)
		assert.Equal(t, domain.ContentFoundry, infos[5].Type)
		assert.Equal(t, "Fundição", infos[5].Label)
		assert.Equal(t, 1, infos[5].Count)
		assert.Equal(t, 0, infos[2].Count)
	})

	t.Run("returns error on count failure", func(t *testing.T) {
		mockSource := &mockSourceService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Source: mockSource})
		require.NoError(t, err)

		_, err = server.handleSourcesResource(ctx, makeReadResourceRequest("portal://sources"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "counting sources")
	})
}

func TestServer_handleSearchResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns results for the query", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{{ID: "n1", Title: "Preço do alumínio", Type: domain.ContentNews}},
		}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		result, err := server.handleSearchResource(ctx, makeReadResourceRequest("portal://search/alum%C3%ADnio"))

		require.NoError(t, err)
		assert.Equal(t, "alumínio", mockSearch.lastQuery)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"id": "n1"`)
		assert.Contains(t, result.Contents[0].Text, `"type": "news"`)
	})

	t.Run("no matches is an empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		result, err := server.handleSearchResource(ctx, makeReadResourceRequest("portal://search/a"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, makeReadResourceRequest("portal://invalid"))

		require.Error(t, err)
	})

	t.Run("search failure is wrapped", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, makeReadResourceRequest("portal://search/alum"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "searching")
	})
}
