package driven

import "context"

// TreeEntry is one node of the document tree enumeration.
type TreeEntry struct {
	// Path is the repository-relative, slash-separated path.
	Path string

	// StoragePath is the resolvable location for read/write access.
	StoragePath string

	// IsDir marks directory entries.
	IsDir bool
}

// DocumentStore exposes the document tree.
//
// The core depends on this abstraction only and never assumes a
// particular storage technology. ListTree must be deterministic in
// ordering for a fixed tree state: document discovery order feeds the
// matcher's tie-break policy and has to be reproducible.
type DocumentStore interface {
	// ListTree enumerates the tree under root, depth-first, in a
	// deterministic order.
	ListTree(ctx context.Context, root string) ([]TreeEntry, error)

	// ReadDocument returns the whole raw text of a document.
	ReadDocument(ctx context.Context, storagePath string) (string, error)

	// WriteDocument replaces the whole raw text of a document
	// atomically: the write completes fully or not at all.
	WriteDocument(ctx context.Context, storagePath string, raw string) error
}
