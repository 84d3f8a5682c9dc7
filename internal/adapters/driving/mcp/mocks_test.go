package mcp

import (
	"context"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
)

type mockIndexer struct {
	index *domain.ContentIndex
	err   error
	root  string
}

var _ driving.IndexerService = (*mockIndexer)(nil)

func (m *mockIndexer) BuildIndex(_ context.Context, root string) (*domain.ContentIndex, error) {
	m.root = root
	if m.err != nil {
		return nil, m.err
	}
	return m.index, nil
}

type mockMatcher struct {
	matches []domain.MatchCandidate
	desc    domain.DocumentDescriptor
	limit   int
}

var _ driving.MatcherService = (*mockMatcher)(nil)

func (m *mockMatcher) FindRelated(
	desc domain.DocumentDescriptor, _ *domain.ContentIndex, limit int,
) []domain.MatchCandidate {
	m.desc = desc
	m.limit = limit
	return m.matches
}

type mockSynchronizer struct {
	results  []domain.TargetResult
	newDoc   domain.NewDocument
	approved []domain.MatchCandidate
}

var _ driving.SynchronizerService = (*mockSynchronizer)(nil)

func (m *mockSynchronizer) Synchronize(
	_ context.Context, newDoc domain.NewDocument, approved []domain.MatchCandidate,
) []domain.TargetResult {
	m.newDoc = newDoc
	m.approved = approved
	return m.results
}

func validPorts() (*Ports, *mockIndexer, *mockMatcher, *mockSynchronizer) {
	indexer := &mockIndexer{index: domain.NewContentIndex([]domain.DocumentRecord{
		{
			Title:       "Audit Logs",
			Tags:        []string{"audit"},
			Category:    "hipaa",
			Subcategory: "documentation",
			Kind:        domain.KindGeneral,
			Path:        "hipaa/documentation/audit-logs.md",
			StoragePath: "/kb/hipaa/documentation/audit-logs.md",
		},
	})}
	matcher := &mockMatcher{}
	synchronizer := &mockSynchronizer{}

	return &Ports{
		Indexer:      indexer,
		Matcher:      matcher,
		Synchronizer: synchronizer,
	}, indexer, matcher, synchronizer
}
