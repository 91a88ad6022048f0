package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string   `json:"query" jsonschema:"text to look for, at least two characters"`
	Types []string `json:"types,omitempty" jsonschema:"restrict results to these collections: news, material, ebook, event, supplier, foundry"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default all)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []domain.SearchResult `json:"results"`
	Count   int                   `json:"count"`
	Total   int                   `json:"total"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search",
		Description: "Search news, technical materials, e-books, events, suppliers and foundries. " +
			"Results are grouped by collection in that order.",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts, err := searchOptions(input.Types)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	results, err := s.ports.Search.Find(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	total := len(results)
	if input.Limit > 0 && len(results) > input.Limit {
		results = results[:input.Limit]
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	return nil, SearchOutput{
		Results: results,
		Count:   len(results),
		Total:   total,
	}, nil
}

func searchOptions(types []string) (domain.SearchOptions, error) {
	var opts domain.SearchOptions
	for _, name := range types {
		ct, err := domain.ParseContentType(name)
		if err != nil {
			return opts, fmt.Errorf("type %q: %w", name, err)
		}
		opts.Types = append(opts.Types, ct)
	}
	return opts, nil
}
