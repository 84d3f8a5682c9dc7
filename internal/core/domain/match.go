package domain

// MatchReason labels why a document was suggested as related.
// The set of known reasons is closed; each has a reciprocal label used
// when the link direction is reversed.
type MatchReason string

const (
	// ReasonTagOverlap marks a shared-tags match.
	ReasonTagOverlap MatchReason = "Tags in common"

	// ReasonSameSubcategory marks documents in the same
	// category/subcategory.
	ReasonSameSubcategory MatchReason = "Same subcategory"

	// ReasonSameCategory marks documents sharing only the top-level
	// category.
	ReasonSameCategory MatchReason = "Same category"

	// ReasonTextSimilarity marks a title/description similarity match.
	ReasonTextSimilarity MatchReason = "Similar content"

	// ReasonProcedureNeighbour marks two procedures in the same
	// subcategory. Distinct from the generic subcategory match.
	ReasonProcedureNeighbour MatchReason = "Procedure in same area"

	// ReasonComplianceProcedure marks a procedure cross-linked to a
	// compliance document through shared keywords.
	ReasonComplianceProcedure MatchReason = "Procedure for compliance topic"

	// ReasonSharedKeywords marks two compliance documents sharing
	// body keywords.
	ReasonSharedKeywords MatchReason = "Compliance topics in common"
)

// reciprocalLabels maps a forward match reason to the label written
// into the target document's back-link. The table is total over the
// known reasons; ReciprocalLabel supplies the fallback.
var reciprocalLabels = map[MatchReason]string{
	ReasonTagOverlap:          "Related by common tags",
	ReasonSameSubcategory:     "Related by subcategory",
	ReasonSameCategory:        "Related by category",
	ReasonTextSimilarity:      "Related by similar content",
	ReasonProcedureNeighbour:  "Related procedure",
	ReasonComplianceProcedure: "Supporting compliance topic",
	ReasonSharedKeywords:      "Related compliance topic",
}

// ReciprocalLabel returns the back-link label for this reason.
// Unknown reasons (including caller-authored synthetic ones) fall back
// to a generic label.
func (r MatchReason) ReciprocalLabel() string {
	if label, ok := reciprocalLabels[r]; ok {
		return label
	}
	return "Related document"
}

// KnownReasons returns the closed set of match reasons in a fixed
// order, paired with their reciprocal labels.
func KnownReasons() []MatchReason {
	return []MatchReason{
		ReasonTagOverlap,
		ReasonSameSubcategory,
		ReasonSameCategory,
		ReasonTextSimilarity,
		ReasonProcedureNeighbour,
		ReasonComplianceProcedure,
		ReasonSharedKeywords,
	}
}

// MatchCandidate is one scored relationship suggestion.
// At most one candidate exists per distinct target document per
// matcher invocation.
type MatchCandidate struct {
	// Document is the matched target.
	Document DocumentRecord

	// Relevance is an unbounded, ranking-only score. Not a
	// probability.
	Relevance float64

	// Reason is the signal that first claimed this target.
	Reason MatchReason
}

// MatchPolicy carries the scoring weights and thresholds.
//
// The values are hand-tuned contract constants with no documented
// derivation; they are configurable policy rather than algorithmic
// truths.
type MatchPolicy struct {
	// TagWeight multiplies tag-overlap scores.
	TagWeight float64

	// CategoryWeight multiplies category/subcategory scores.
	CategoryWeight float64

	// KindWeight multiplies kind-specific heuristic scores.
	KindWeight float64

	// SubcategoryScore is the base score for a shared subcategory.
	SubcategoryScore float64

	// CategoryScore is the base score for a shared category only.
	CategoryScore float64

	// SimilarityThreshold is the minimum Dice coefficient for a text
	// similarity match to be kept.
	SimilarityThreshold float64
}

// DefaultMatchPolicy returns the contract weights.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{
		TagWeight:           1.5,
		CategoryWeight:      1.2,
		KindWeight:          1.3,
		SubcategoryScore:    0.9,
		CategoryScore:       0.7,
		SimilarityThreshold: 0.3,
	}
}
