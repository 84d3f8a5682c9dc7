package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
)

// fakeIndexer returns a canned index and records the root it was asked
// to scan.
type fakeIndexer struct {
	index *domain.ContentIndex
	err   error
	root  string
}

var _ driving.IndexerService = (*fakeIndexer)(nil)

func (f *fakeIndexer) BuildIndex(_ context.Context, root string) (*domain.ContentIndex, error) {
	f.root = root
	if f.err != nil {
		return nil, f.err
	}
	return f.index, nil
}

// fakeMatcher returns canned matches and records the descriptor and
// limit it was called with.
type fakeMatcher struct {
	matches []domain.MatchCandidate
	desc    domain.DocumentDescriptor
	limit   int
}

var _ driving.MatcherService = (*fakeMatcher)(nil)

func (f *fakeMatcher) FindRelated(
	desc domain.DocumentDescriptor, _ *domain.ContentIndex, limit int,
) []domain.MatchCandidate {
	f.desc = desc
	f.limit = limit
	return f.matches
}

// fakeSynchronizer returns canned results and records its inputs.
type fakeSynchronizer struct {
	results  []domain.TargetResult
	newDoc   domain.NewDocument
	approved []domain.MatchCandidate
}

var _ driving.SynchronizerService = (*fakeSynchronizer)(nil)

func (f *fakeSynchronizer) Synchronize(
	_ context.Context, newDoc domain.NewDocument, approved []domain.MatchCandidate,
) []domain.TargetResult {
	f.newDoc = newDoc
	f.approved = approved
	return f.results
}

// setupTestServices swaps the package-level services for fakes for the
// duration of one test and resets flag state afterwards.
func setupTestServices(
	t *testing.T, indexer driving.IndexerService, matcher driving.MatcherService, sync driving.SynchronizerService,
) {
	t.Helper()

	origIndexer := indexerService
	origMatcher := matcherService
	origSync := synchronizerService
	origRoot := contentRoot

	indexerService = indexer
	matcherService = matcher
	synchronizerService = sync

	t.Cleanup(func() {
		indexerService = origIndexer
		matcherService = origMatcher
		synchronizerService = origSync
		contentRoot = origRoot
		resetFlags()
	})
}

// resetFlags restores command flag variables to their defaults. Flag
// values persist between Execute calls within one process otherwise.
func resetFlags() {
	rootVerbose = false
	indexJSON = false
	suggestLimit = 5
	suggestJSON = false
	suggestTitle = ""
	suggestDescription = ""
	suggestTags = nil
	suggestCategory = ""
	suggestKind = ""
	syncTitle = ""
	syncReason = ""
}

// executeCommand runs the root command with the given arguments and
// returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func testIndex() *domain.ContentIndex {
	return domain.NewContentIndex([]domain.DocumentRecord{
		{
			Title:       "Audit Logs",
			Description: "Handling of audit logs",
			Tags:        []string{"security", "audit"},
			Category:    "hipaa",
			Subcategory: "documentation",
			Kind:        domain.KindGeneral,
			Path:        "hipaa/documentation/audit-logs.md",
			StoragePath: "/kb/hipaa/documentation/audit-logs.md",
		},
		{
			Title:       "Backup Procedure",
			Tags:        []string{"backup"},
			Category:    "procedures",
			Subcategory: "hipaa",
			Kind:        domain.KindProcedure,
			Path:        "procedures/hipaa/backup.md",
			StoragePath: "/kb/procedures/hipaa/backup.md",
		},
	})
}
