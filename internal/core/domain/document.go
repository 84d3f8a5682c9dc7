package domain

import (
	"path"
	"strings"
)

// DocumentKind is the coarse classification of a document.
// Kind-specific matching heuristics key off this value.
type DocumentKind string

const (
	// KindProcedure marks step-by-step operational documents.
	KindProcedure DocumentKind = "procedure"

	// KindCompliance marks regulatory/compliance documents.
	KindCompliance DocumentKind = "compliance"

	// KindGeneral is the default for everything else.
	KindGeneral DocumentKind = "general"
)

// ParseDocumentKind maps a raw string to a DocumentKind.
// Accepts singular and plural path-segment spellings.
// Returns KindGeneral and false for unknown values.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "procedure", "procedures":
		return KindProcedure, true
	case "compliance":
		return KindCompliance, true
	case "general":
		return KindGeneral, true
	default:
		return KindGeneral, false
	}
}

// DocumentRecord is one indexed document.
// Records are created fresh on every indexer run, are read-only once
// built, and are discarded at the end of the batch.
type DocumentRecord struct {
	// Title is the human-readable title from metadata,
	// falling back to a title derived from the filename.
	Title string

	// Description is the short summary from metadata, empty if absent.
	Description string

	// Tags are normalised: case-folded, trimmed, stripped of quoting
	// artifacts, deduplicated. Order carries no meaning.
	Tags []string

	// Category is the top-level path segment.
	Category string

	// Subcategory is the second path segment, empty if the document
	// sits directly under its category.
	Subcategory string

	// Kind is inferred from the path prefix, else an explicit metadata
	// field, else KindGeneral. The path prefix takes precedence.
	Kind DocumentKind

	// Path is the repository-relative path, slash-separated.
	Path string

	// StoragePath is the resolvable location for read/write access.
	StoragePath string

	// Body is the raw text excluding the metadata block.
	Body string

	// Metadata is the ordered key/value header, round-tripped verbatim
	// except for fields the synchronizer explicitly updates.
	Metadata *Metadata
}

// HasTag reports whether the record carries the given normalised tag.
func (d *DocumentRecord) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CategoryKey returns "category" or "category/subcategory" depending on
// whether a subcategory is present.
func (d *DocumentRecord) CategoryKey() string {
	if d.Subcategory == "" {
		return d.Category
	}
	return d.Category + "/" + d.Subcategory
}

// DocumentDescriptor describes a document that may not exist on disk
// yet. The matcher scores descriptors against the content index.
type DocumentDescriptor struct {
	// Title is the proposed document title.
	Title string

	// Description is the proposed short summary.
	Description string

	// Tags are normalised tags, may be empty.
	Tags []string

	// Category is the top-level placement.
	Category string

	// Subcategory is the optional second-level placement.
	Subcategory string

	// Kind selects kind-specific matching heuristics.
	Kind DocumentKind

	// Path is the repository-relative path the document will occupy.
	// Used for self-match exclusion; may be empty.
	Path string

	// Body is the drafted body text, if any. Feeds keyword extraction
	// for compliance cross-linking.
	Body string
}

// CategoryKey mirrors DocumentRecord.CategoryKey for descriptors.
func (d *DocumentDescriptor) CategoryKey() string {
	if d.Subcategory == "" {
		return d.Category
	}
	return d.Category + "/" + d.Subcategory
}

// TitleFromPath derives a display title from a document path:
// the base name without extension, separators replaced with spaces.
func TitleFromPath(p string) string {
	name := path.Base(p)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
