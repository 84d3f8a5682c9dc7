// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Relink. It lets AI assistants index the knowledge base, request
// related-content suggestions, and synchronize reciprocal links.
package mcp

import "errors"

var (
	// ErrMissingIndexer is returned when the indexer service is not provided.
	ErrMissingIndexer = errors.New("mcp: indexer service is required")

	// ErrMissingMatcher is returned when the matcher service is not provided.
	ErrMissingMatcher = errors.New("mcp: matcher service is required")

	// ErrMissingSynchronizer is returned when the synchronizer service is not provided.
	ErrMissingSynchronizer = errors.New("mcp: synchronizer service is required")
)
