package driving

import (
	"context"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

// IndexerService builds the per-run content index.
type IndexerService interface {
	// BuildIndex walks the document tree once and returns the
	// immutable index for this run. Fails with
	// domain.ErrScanFailed if the root is unreadable; individual
	// malformed documents are skipped with a logged warning.
	BuildIndex(ctx context.Context, root string) (*domain.ContentIndex, error)
}
