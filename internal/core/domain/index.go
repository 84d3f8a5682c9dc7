package domain

// ContentIndex is the immutable-for-the-run view of the document tree.
//
// Documents holds records in discovery order, which is stable for a
// fixed tree state and serves as the matcher's tie-break order. ByTag
// and ByCategory are derived in a second pass after discovery completes
// so both maps reflect the full document set before either is queried.
type ContentIndex struct {
	// Documents is the discovery-ordered record sequence.
	Documents []DocumentRecord

	// ByTag maps a normalised tag to the documents carrying it.
	ByTag map[string][]*DocumentRecord

	// ByCategory maps a category key to its documents. A document with
	// a subcategory appears under both "category" and
	// "category/subcategory".
	ByCategory map[string][]*DocumentRecord

	position map[string]int
}

// NewContentIndex builds an index over the given records. The slice is
// owned by the index afterwards and must not be appended to.
func NewContentIndex(docs []DocumentRecord) *ContentIndex {
	ix := &ContentIndex{
		Documents:  docs,
		ByTag:      make(map[string][]*DocumentRecord),
		ByCategory: make(map[string][]*DocumentRecord),
		position:   make(map[string]int, len(docs)),
	}

	for i := range ix.Documents {
		doc := &ix.Documents[i]
		ix.position[doc.Path] = i

		for _, tag := range doc.Tags {
			ix.ByTag[tag] = append(ix.ByTag[tag], doc)
		}

		if doc.Category != "" {
			ix.ByCategory[doc.Category] = append(ix.ByCategory[doc.Category], doc)
			if doc.Subcategory != "" {
				key := doc.CategoryKey()
				ix.ByCategory[key] = append(ix.ByCategory[key], doc)
			}
		}
	}

	return ix
}

// Len returns the number of indexed documents.
func (ix *ContentIndex) Len() int {
	return len(ix.Documents)
}

// Position returns the discovery-order position of a document path and
// whether the path is present in the index.
func (ix *ContentIndex) Position(path string) (int, bool) {
	pos, ok := ix.position[path]
	return pos, ok
}

// DocumentsByTag returns the documents carrying the given tag.
func (ix *ContentIndex) DocumentsByTag(tag string) []*DocumentRecord {
	return ix.ByTag[tag]
}

// DocumentsByCategory returns the documents under the given category
// key ("category" or "category/subcategory").
func (ix *ContentIndex) DocumentsByCategory(key string) []*DocumentRecord {
	return ix.ByCategory[key]
}
