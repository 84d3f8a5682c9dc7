package mcp

import (
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point for dependency
// injection.
type Ports struct {
	// Indexer builds the per-run content index.
	Indexer driving.IndexerService

	// Matcher ranks related-content suggestions.
	Matcher driving.MatcherService

	// Synchronizer inserts reciprocal links into approved targets.
	Synchronizer driving.SynchronizerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Indexer == nil {
		return ErrMissingIndexer
	}
	if p.Matcher == nil {
		return ErrMissingMatcher
	}
	if p.Synchronizer == nil {
		return ErrMissingSynchronizer
	}
	return nil
}
