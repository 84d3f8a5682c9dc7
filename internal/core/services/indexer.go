package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
	"github.com/relink-labs/relink-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexerService = (*IndexerService)(nil)

// IndexerService walks the document tree and builds the content index.
type IndexerService struct {
	store driven.DocumentStore
	codec driven.MetadataCodec
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(store driven.DocumentStore, codec driven.MetadataCodec) *IndexerService {
	return &IndexerService{
		store: store,
		codec: codec,
	}
}

// BuildIndex walks the tree under root once and returns the immutable
// index for this run.
//
// The root being unreadable is fatal (domain.ErrScanFailed). A single
// malformed or unreadable document is logged and skipped; one corrupt
// file never blocks indexing of the rest. The tag and category maps
// are built in a second pass after collection completes, so both
// reflect the full document set before either is queried.
func (s *IndexerService) BuildIndex(ctx context.Context, root string) (*domain.ContentIndex, error) {
	logger.Section("Content Indexing")
	logger.Debug("Root: %s", root)

	entries, err := s.store.ListTree(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScanFailed, err)
	}

	// First pass: collect records in discovery order.
	var docs []domain.DocumentRecord
	for _, entry := range entries {
		if entry.IsDir || !isDocumentPath(entry.Path) {
			continue
		}

		record, err := s.readRecord(ctx, entry)
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Path, err)
			continue
		}
		docs = append(docs, *record)
	}

	// Second pass: derive the lookup maps over the complete set.
	index := domain.NewContentIndex(docs)

	logger.Info("Indexed %d documents, %d tags, %d category keys",
		index.Len(), len(index.ByTag), len(index.ByCategory))

	return index, nil
}

// readRecord reads and parses one document into a record.
func (s *IndexerService) readRecord(ctx context.Context, entry driven.TreeEntry) (*domain.DocumentRecord, error) {
	raw, err := s.store.ReadDocument(ctx, entry.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	meta, body, err := s.codec.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
	}

	title := meta.GetString("title")
	if title == "" {
		title = domain.TitleFromPath(entry.Path)
	}

	category, subcategory := splitCategory(entry.Path)

	record := &domain.DocumentRecord{
		Title:       title,
		Description: meta.GetString("description"),
		Tags:        normaliseTags(metaValue(meta, "tags")),
		Category:    category,
		Subcategory: subcategory,
		Kind:        deriveKind(entry.Path, meta),
		Path:        entry.Path,
		StoragePath: entry.StoragePath,
		Body:        body,
		Metadata:    meta,
	}

	return record, nil
}

// isDocumentPath reports whether the path names an indexable document.
func isDocumentPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// splitCategory derives category and subcategory from the first two
// path segments. A file directly under the root has neither; a file
// directly under its category directory has no subcategory.
func splitCategory(p string) (category, subcategory string) {
	segments := strings.Split(path.Clean(p), "/")
	if len(segments) >= 2 {
		category = segments[0]
	}
	if len(segments) >= 3 {
		subcategory = segments[1]
	}
	return category, subcategory
}

// deriveKind infers the document kind. The path prefix takes
// precedence over the explicit metadata field; everything else is
// general.
func deriveKind(p string, meta *domain.Metadata) domain.DocumentKind {
	segments := strings.Split(path.Clean(p), "/")
	if len(segments) >= 2 {
		if kind, ok := domain.ParseDocumentKind(segments[0]); ok {
			return kind
		}
	}
	if kind, ok := domain.ParseDocumentKind(meta.GetString("type")); ok {
		return kind
	}
	return domain.KindGeneral
}

// metaValue returns the raw metadata value for key, nil if absent.
func metaValue(meta *domain.Metadata, key string) any {
	val, _ := meta.Get(key)
	return val
}

// normaliseTags turns a raw metadata tags value into a normalised tag
// set: lower-cased, trimmed, stripped of surrounding quotes,
// deduplicated. A scalar string is split on commas; list values are
// handled element-wise.
func normaliseTags(raw any) []string {
	var parts []string

	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			parts = append(parts, fmt.Sprintf("%v", item))
		}
	default:
		parts = []string{fmt.Sprintf("%v", v)}
	}

	seen := make(map[string]struct{}, len(parts))
	var tags []string
	for _, part := range parts {
		tag := strings.ToLower(strings.TrimSpace(part))
		tag = strings.Trim(tag, `"'`)
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
