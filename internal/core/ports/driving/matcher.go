package driving

import "github.com/relink-labs/relink-cli/internal/core/domain"

// MatcherService ranks candidate relationships.
type MatcherService interface {
	// FindRelated scores the descriptor against every indexed
	// document and returns at most limit candidates, ordered by
	// relevance descending with ties broken by discovery order.
	// The descriptor's own path is never returned. Pure function of
	// its inputs: no I/O, deterministic for a fixed index.
	FindRelated(desc domain.DocumentDescriptor, index *domain.ContentIndex, limit int) []domain.MatchCandidate
}
