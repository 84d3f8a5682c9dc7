package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

func record(path, title string, kind domain.DocumentKind, category, subcategory string, tags ...string) domain.DocumentRecord {
	return domain.DocumentRecord{
		Title:       title,
		Tags:        tags,
		Category:    category,
		Subcategory: subcategory,
		Kind:        kind,
		Path:        path,
		StoragePath: path,
	}
}

func defaultMatcher() *MatcherService {
	return NewMatcherService(domain.DefaultMatchPolicy())
}

func TestMatcherService_FindRelated(t *testing.T) {
	t.Run("tag overlap ranks shared-tag documents first", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("hipaa/documentation/a.md", "A", domain.KindGeneral, "hipaa", "documentation", "security", "audit"),
			record("hipaa/documentation/b.md", "B", domain.KindGeneral, "hipaa", "documentation", "audit", "logging"),
			record("misc/unrelated.md", "Unrelated", domain.KindGeneral, "misc", "", "weather"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "New audit doc",
			Tags:        []string{"audit"},
			Category:    "hipaa",
			Subcategory: "documentation",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 2)
		// Equal overlap ratios (1/2 each): tie-break is discovery order.
		assert.Equal(t, "hipaa/documentation/a.md", matches[0].Document.Path)
		assert.Equal(t, "hipaa/documentation/b.md", matches[1].Document.Path)
		assert.Equal(t, domain.ReasonTagOverlap, matches[0].Reason)
		assert.InDelta(t, 0.5*1.5, matches[0].Relevance, 1e-9)
	})

	t.Run("self-match is excluded", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("hipaa/self.md", "Self", domain.KindGeneral, "hipaa", "", "audit"),
			record("hipaa/other.md", "Other", domain.KindGeneral, "hipaa", "", "audit"),
		})

		desc := domain.DocumentDescriptor{
			Title:    "Self",
			Tags:     []string{"audit"},
			Category: "hipaa",
			Path:     "hipaa/self.md",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 1)
		assert.Equal(t, "hipaa/other.md", matches[0].Document.Path)
	})

	t.Run("tag pass skipped when candidate has no tags", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("misc/tagged.md", "Tagged", domain.KindGeneral, "misc", "", "audit"),
		})

		desc := domain.DocumentDescriptor{Title: "Completely different subject", Category: "other"}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		assert.Empty(t, matches)
	})

	t.Run("subcategory beats category-only score", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("hipaa/top.md", "Top", domain.KindGeneral, "hipaa", ""),
			record("hipaa/documentation/deep.md", "Deep", domain.KindGeneral, "hipaa", "documentation"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "Candidate",
			Category:    "hipaa",
			Subcategory: "documentation",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 2)
		assert.Equal(t, "hipaa/documentation/deep.md", matches[0].Document.Path)
		assert.Equal(t, domain.ReasonSameSubcategory, matches[0].Reason)
		assert.InDelta(t, 0.9*1.2, matches[0].Relevance, 1e-9)
		assert.Equal(t, domain.ReasonSameCategory, matches[1].Reason)
		assert.InDelta(t, 0.7*1.2, matches[1].Relevance, 1e-9)
	})

	t.Run("earlier pass keeps its more specific reason", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("hipaa/documentation/a.md", "A", domain.KindGeneral, "hipaa", "documentation", "audit"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "A",
			Tags:        []string{"audit"},
			Category:    "hipaa",
			Subcategory: "documentation",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 1)
		assert.Equal(t, domain.ReasonTagOverlap, matches[0].Reason)
	})

	t.Run("text similarity below threshold is dropped", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("misc/nearby.md", "Quarterly security audit checklist", domain.KindGeneral, "misc", ""),
			record("misc/far.md", "Zebra", domain.KindGeneral, "misc", ""),
		})

		desc := domain.DocumentDescriptor{Title: "Quarterly security audit checklists"}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 1)
		assert.Equal(t, "misc/nearby.md", matches[0].Document.Path)
		assert.Equal(t, domain.ReasonTextSimilarity, matches[0].Reason)
	})

	t.Run("procedures in the same subcategory get a distinct label", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("procedures/hipaa/backup.md", "Backups", domain.KindProcedure, "procedures", "hipaa"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "Restore drill",
			Kind:        domain.KindProcedure,
			Category:    "procedures",
			Subcategory: "hipaa",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 1)
		// The category pass claims it first with the generic
		// subcategory reason; the kind pass never overrides.
		assert.Equal(t, domain.ReasonSameSubcategory, matches[0].Reason)
	})

	t.Run("procedure neighbours matched across categories by subcategory", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("procedures/hipaa/backup.md", "Backups", domain.KindProcedure, "procedures", "hipaa"),
			record("procedures/soc2/change.md", "Changes", domain.KindProcedure, "procedures", "soc2"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "Restore drill",
			Kind:        domain.KindProcedure,
			Category:    "runbooks",
			Subcategory: "hipaa",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 1)
		assert.Equal(t, "procedures/hipaa/backup.md", matches[0].Document.Path)
		assert.Equal(t, domain.ReasonProcedureNeighbour, matches[0].Reason)
		assert.InDelta(t, 0.9*1.3, matches[0].Relevance, 1e-9)
	})

	t.Run("compliance candidate cross-links procedures by keywords", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("procedures/hipaa/encryption-setup.md", "Encryption setup procedure", domain.KindProcedure, "procedures", "hipaa"),
			record("procedures/hipaa/unrelated.md", "Printer toner replacement", domain.KindProcedure, "procedures", "hipaa"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "Encryption compliance",
			Description: "Requirements for data encryption at rest",
			Kind:        domain.KindCompliance,
			Category:    "hipaa",
		}

		matches := defaultMatcher().FindRelated(desc, index, 10)

		require.Len(t, matches, 1)
		assert.Equal(t, "procedures/hipaa/encryption-setup.md", matches[0].Document.Path)
		assert.Equal(t, domain.ReasonComplianceProcedure, matches[0].Reason)
		assert.InDelta(t, 0.6*1.3, matches[0].Relevance, 1e-9)
	})

	t.Run("compliance pair boost grows with shared keywords", func(t *testing.T) {
		one := record("hipaa/one.md", "Encryption policy", domain.KindCompliance, "hipaa", "")
		one.Body = "encryption requirements"
		two := record("hipaa/two.md", "Encryption and retention policy", domain.KindCompliance, "hipaa", "")
		two.Body = "encryption retention requirements"
		index := domain.NewContentIndex([]domain.DocumentRecord{one, two})

		policy := domain.DefaultMatchPolicy()
		policy.SimilarityThreshold = 2 // similarity pass can never fire
		matcher := NewMatcherService(policy)

		desc := domain.DocumentDescriptor{
			Title: "Encryption retention rules",
			Body:  "encryption retention requirements schedule",
			Kind:  domain.KindCompliance,
		}

		matches := matcher.FindRelated(desc, index, 10)

		require.Len(t, matches, 2)
		assert.Equal(t, "hipaa/two.md", matches[0].Document.Path)
		assert.Equal(t, domain.ReasonSharedKeywords, matches[0].Reason)
		assert.Greater(t, matches[0].Relevance, matches[1].Relevance)
	})

	t.Run("limit truncates the ranked list", func(t *testing.T) {
		docs := []domain.DocumentRecord{
			record("hipaa/a.md", "A", domain.KindGeneral, "hipaa", "", "audit"),
			record("hipaa/b.md", "B", domain.KindGeneral, "hipaa", "", "audit"),
			record("hipaa/c.md", "C", domain.KindGeneral, "hipaa", "", "audit"),
		}
		index := domain.NewContentIndex(docs)

		desc := domain.DocumentDescriptor{Title: "X", Tags: []string{"audit"}}

		matches := defaultMatcher().FindRelated(desc, index, 2)

		assert.Len(t, matches, 2)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		var docs []domain.DocumentRecord
		for _, p := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			docs = append(docs, record("hipaa/"+p+".md", p, domain.KindGeneral, "hipaa", "", "audit"))
		}
		index := domain.NewContentIndex(docs)

		desc := domain.DocumentDescriptor{Title: "X", Tags: []string{"audit"}}

		matches := defaultMatcher().FindRelated(desc, index, 0)

		assert.Len(t, matches, DefaultMatchLimit)
	})

	t.Run("ranking is deterministic across calls", func(t *testing.T) {
		index := domain.NewContentIndex([]domain.DocumentRecord{
			record("hipaa/documentation/a.md", "A", domain.KindGeneral, "hipaa", "documentation", "security", "audit"),
			record("hipaa/documentation/b.md", "B", domain.KindGeneral, "hipaa", "documentation", "audit", "logging"),
			record("hipaa/c.md", "C", domain.KindGeneral, "hipaa", "", "audit"),
			record("misc/d.md", "D", domain.KindGeneral, "misc", "", "weather"),
		})

		desc := domain.DocumentDescriptor{
			Title:       "Audit handling",
			Tags:        []string{"audit", "security"},
			Category:    "hipaa",
			Subcategory: "documentation",
		}

		matcher := defaultMatcher()
		first := matcher.FindRelated(desc, index, 10)
		second := matcher.FindRelated(desc, index, 10)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Document.Path, second[i].Document.Path)
			assert.Equal(t, first[i].Relevance, second[i].Relevance)
			assert.Equal(t, first[i].Reason, second[i].Reason)
		}
	})
}
