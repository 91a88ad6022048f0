package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/portal-search/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for portal resources.
	uriScheme = "portal://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Item count of every portal collection",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-results",
		Description: "Current results for a query across all collections",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

// sourceInfo describes one collection in the sources resource.
type sourceInfo struct {
	Type  domain.ContentType `json:"type"`
	Label string             `json:"label"`
	Count int                `json:"count"`
}

// handleSourcesResource lists every collection with its item count,
// in result priority order.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Source == nil {
		return jsonResource(req.Params.URI, []sourceInfo{})
	}

	counts, err := s.ports.Source.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting sources: %w", err)
	}

	infos := make([]sourceInfo, 0, len(counts))
	for _, ct := range domain.ContentTypes() {
		infos = append(infos, sourceInfo{
			Type:  ct,
			Label: ct.Label(),
			Count: counts[ct],
		})
	}

	return jsonResource(req.Params.URI, infos)
}

// handleSearchResource returns the results for the query in the URI.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query, ok := extractQuery(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results, err := s.ports.Search.Find(ctx, query, domain.SearchOptions{})
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	if results == nil {
		results = []domain.SearchResult{}
	}

	return jsonResource(req.Params.URI, results)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractQuery extracts the unescaped query from portal://search/{query}.
func extractQuery(uri string) (string, bool) {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return "", false
	}
	return query, true
}
