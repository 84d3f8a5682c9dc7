package services

import (
	"sort"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
	"github.com/relink-labs/relink-cli/internal/logger"
)

// Ensure MatcherService implements the interface.
var _ driving.MatcherService = (*MatcherService)(nil)

// DefaultMatchLimit caps the suggestion list when the caller passes a
// non-positive limit.
const DefaultMatchLimit = 5

// Base scores for kind-specific heuristics, before the kind weight is
// applied. Policy constants in the same spirit as domain.MatchPolicy.
const (
	procedureNeighbourScore  = 0.9
	complianceProcedureScore = 0.6
	sharedKeywordUnitScore   = 0.25
)

// MatcherService scores and ranks candidate relationships.
//
// It is a pure function of its inputs: it performs no I/O, never
// mutates the index, and returns identical results for identical
// inputs. Safe to call concurrently for independent descriptors.
type MatcherService struct {
	policy domain.MatchPolicy
}

// NewMatcherService creates a matcher with the given scoring policy.
func NewMatcherService(policy domain.MatchPolicy) *MatcherService {
	return &MatcherService{policy: policy}
}

// scoredMatch is one de-duplicated hit with its tie-break position.
type scoredMatch struct {
	doc       *domain.DocumentRecord
	relevance float64
	reason    domain.MatchReason
	position  int // discovery order in the index
}

// matchSet accumulates passes, keeping only the first pass that
// claimed each target. Later passes never override an earlier, more
// specific reason.
type matchSet struct {
	byPath  map[string]int
	matches []scoredMatch
}

func newMatchSet() *matchSet {
	return &matchSet{byPath: make(map[string]int)}
}

// add records a hit unless the target was already claimed.
func (m *matchSet) add(doc *domain.DocumentRecord, relevance float64, reason domain.MatchReason, position int) {
	if _, claimed := m.byPath[doc.Path]; claimed {
		return
	}
	m.byPath[doc.Path] = len(m.matches)
	m.matches = append(m.matches, scoredMatch{
		doc:       doc,
		relevance: relevance,
		reason:    reason,
		position:  position,
	})
}

// has reports whether the target was already claimed.
func (m *matchSet) has(path string) bool {
	_, claimed := m.byPath[path]
	return claimed
}

// FindRelated runs the four signal passes in fixed priority order,
// merges them by target, and returns at most limit candidates ordered
// by relevance descending with ties broken by discovery order.
// The descriptor's own path is never returned.
func (s *MatcherService) FindRelated(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, limit int,
) []domain.MatchCandidate {
	logger.Section("Related Content Matching")
	logger.Debug("Candidate: %q kind=%s category=%s tags=%v",
		desc.Title, desc.Kind, desc.CategoryKey(), desc.Tags)

	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	set := newMatchSet()
	s.matchByTags(desc, index, set)
	s.matchByCategory(desc, index, set)
	s.matchBySimilarity(desc, index, set)
	s.matchByKind(desc, index, set)

	logger.Debug("Merged matches: %d", len(set.matches))

	sort.Slice(set.matches, func(i, j int) bool {
		if set.matches[i].relevance != set.matches[j].relevance {
			return set.matches[i].relevance > set.matches[j].relevance
		}
		return set.matches[i].position < set.matches[j].position
	})

	if len(set.matches) > limit {
		set.matches = set.matches[:limit]
	}

	candidates := make([]domain.MatchCandidate, len(set.matches))
	for i, m := range set.matches {
		candidates[i] = domain.MatchCandidate{
			Document:  *m.doc,
			Relevance: m.relevance,
			Reason:    m.reason,
		}
		logger.Debug("  [%d] %s (%.3f, %s)", i+1, m.doc.Path, m.relevance, m.reason)
	}
	return candidates
}

// matchByTags scores tag overlap: |∩| / max(|a|, |b|), weighted.
// Skipped entirely when the candidate has no tags.
func (s *MatcherService) matchByTags(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, set *matchSet,
) {
	if len(desc.Tags) == 0 {
		return
	}

	candidateTags := make(map[string]struct{}, len(desc.Tags))
	for _, tag := range desc.Tags {
		candidateTags[tag] = struct{}{}
	}

	for i := range index.Documents {
		doc := &index.Documents[i]
		if doc.Path == desc.Path || len(doc.Tags) == 0 {
			continue
		}

		var overlap int
		for _, tag := range doc.Tags {
			if _, ok := candidateTags[tag]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		larger := len(candidateTags)
		if len(doc.Tags) > larger {
			larger = len(doc.Tags)
		}
		ratio := float64(overlap) / float64(larger)
		set.add(doc, ratio*s.policy.TagWeight, domain.ReasonTagOverlap, i)
	}
}

// matchByCategory scores placement: shared category/subcategory first,
// then shared category only for targets not already claimed by the
// more specific subcategory hit.
func (s *MatcherService) matchByCategory(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, set *matchSet,
) {
	if desc.Category == "" {
		return
	}

	if desc.Subcategory != "" {
		for _, doc := range index.DocumentsByCategory(desc.CategoryKey()) {
			if doc.Path == desc.Path {
				continue
			}
			pos, _ := index.Position(doc.Path)
			set.add(doc, s.policy.SubcategoryScore*s.policy.CategoryWeight,
				domain.ReasonSameSubcategory, pos)
		}
	}

	for _, doc := range index.DocumentsByCategory(desc.Category) {
		if doc.Path == desc.Path || set.has(doc.Path) {
			continue
		}
		pos, _ := index.Position(doc.Path)
		set.add(doc, s.policy.CategoryScore*s.policy.CategoryWeight,
			domain.ReasonSameCategory, pos)
	}
}

// matchBySimilarity scores Dice bigram similarity over concatenated
// title and description. Only hits at or above the acceptance
// threshold are kept, unweighted.
func (s *MatcherService) matchBySimilarity(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, set *matchSet,
) {
	candidateText := desc.Title + " " + desc.Description

	for i := range index.Documents {
		doc := &index.Documents[i]
		if doc.Path == desc.Path || set.has(doc.Path) {
			continue
		}

		score := diceCoefficient(candidateText, doc.Title+" "+doc.Description)
		if score < s.policy.SimilarityThreshold {
			continue
		}
		set.add(doc, score, domain.ReasonTextSimilarity, i)
	}
}

// matchByKind applies the kind-specific heuristics, all weighted by
// the kind weight.
func (s *MatcherService) matchByKind(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, set *matchSet,
) {
	switch desc.Kind {
	case domain.KindProcedure:
		s.matchProcedureNeighbours(desc, index, set)
	case domain.KindCompliance:
		s.matchComplianceLinks(desc, index, set)
	}
}

// matchProcedureNeighbours boosts procedures working the same area as
// the candidate: any procedure sharing its subcategory, wherever it
// lives in the tree. Documents under the candidate's exact category
// key were already claimed by the category pass with its own label.
func (s *MatcherService) matchProcedureNeighbours(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, set *matchSet,
) {
	if desc.Subcategory == "" {
		return
	}
	for i := range index.Documents {
		doc := &index.Documents[i]
		if doc.Path == desc.Path || doc.Kind != domain.KindProcedure || set.has(doc.Path) {
			continue
		}
		if doc.Subcategory != desc.Subcategory {
			continue
		}
		set.add(doc, procedureNeighbourScore*s.policy.KindWeight,
			domain.ReasonProcedureNeighbour, i)
	}
}

// matchComplianceLinks cross-links a compliance candidate to
// procedures whose title/description keywords intersect the
// candidate's keywords, and to other compliance documents with a
// graded boost proportional to the number of shared body keywords.
func (s *MatcherService) matchComplianceLinks(
	desc domain.DocumentDescriptor, index *domain.ContentIndex, set *matchSet,
) {
	candidateKeywords := extractKeywords(desc.Title + " " + desc.Description + " " + desc.Body)
	if len(candidateKeywords) == 0 {
		return
	}

	for i := range index.Documents {
		doc := &index.Documents[i]
		if doc.Path == desc.Path || set.has(doc.Path) {
			continue
		}

		switch doc.Kind {
		case domain.KindProcedure:
			docKeywords := extractKeywords(doc.Title + " " + doc.Description)
			if sharedKeywordCount(candidateKeywords, docKeywords) == 0 {
				continue
			}
			set.add(doc, complianceProcedureScore*s.policy.KindWeight,
				domain.ReasonComplianceProcedure, i)

		case domain.KindCompliance:
			docKeywords := extractKeywords(doc.Title + " " + doc.Description + " " + doc.Body)
			shared := sharedKeywordCount(candidateKeywords, docKeywords)
			if shared == 0 {
				continue
			}
			set.add(doc, float64(shared)*sharedKeywordUnitScore*s.policy.KindWeight,
				domain.ReasonSharedKeywords, i)
		}
	}
}
