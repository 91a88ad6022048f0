// Package mcp provides an MCP (Model Context Protocol) server adapter for
// portal-search. It lets AI assistants search the portal collections and
// inspect the configured content sources.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
