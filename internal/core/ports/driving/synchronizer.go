package driving

import (
	"context"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

// SynchronizerService inserts reciprocal links into approved targets.
type SynchronizerService interface {
	// Synchronize edits each approved target to link back to the new
	// document. Each target fails independently; one failure never
	// aborts the remaining targets. Re-running with the same inputs
	// is idempotent: duplicate links are never created.
	Synchronize(ctx context.Context, newDoc domain.NewDocument, approved []domain.MatchCandidate) []domain.TargetResult
}
