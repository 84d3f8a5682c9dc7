package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
)

// memStore is an in-memory driven.DocumentStore for tests.
// Paths double as storage paths.
type memStore struct {
	files      map[string]string
	listErr    error
	failReads  map[string]bool
	failWrites map[string]bool
	writes     int
}

var _ driven.DocumentStore = (*memStore)(nil)

func newMemStore(files map[string]string) *memStore {
	return &memStore{
		files:      files,
		failReads:  make(map[string]bool),
		failWrites: make(map[string]bool),
	}
}

func (m *memStore) ListTree(_ context.Context, _ string) ([]driven.TreeEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	entries := make([]driven.TreeEntry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, driven.TreeEntry{
			Path:        p,
			StoragePath: p,
		})
	}
	return entries, nil
}

func (m *memStore) ReadDocument(_ context.Context, storagePath string) (string, error) {
	if m.failReads[storagePath] {
		return "", errors.New("read refused")
	}
	content, ok := m.files[storagePath]
	if !ok {
		return "", errors.New("no such document")
	}
	return content, nil
}

func (m *memStore) WriteDocument(_ context.Context, storagePath string, raw string) error {
	if m.failWrites[storagePath] {
		return errors.New("write refused")
	}
	m.files[storagePath] = raw
	m.writes++
	return nil
}

// passCodec is a minimal driven.MetadataCodec for tests. It parses a
// simplified frontmatter dialect: "key: value" lines between "---"
// delimiters, with comma-separated tags.
type passCodec struct{}

var _ driven.MetadataCodec = (*passCodec)(nil)

func (passCodec) Parse(raw string) (*domain.Metadata, string, error) {
	if !strings.HasPrefix(raw, "---\n") {
		return &domain.Metadata{}, raw, nil
	}

	rest := strings.TrimPrefix(raw, "---\n")
	idx := strings.Index(rest, "---\n")
	if idx < 0 {
		return nil, "", domain.ErrDocumentParse
	}

	block := rest[:idx]
	body := rest[idx+4:]

	meta := &domain.Metadata{Raw: block}
	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		meta.Fields = append(meta.Fields, domain.MetadataField{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return meta, body, nil
}

func (passCodec) Serialize(meta *domain.Metadata, body string) (string, error) {
	if meta == nil || (meta.Raw == "" && meta.Len() == 0) {
		return body, nil
	}
	return "---\n" + meta.Raw + "---\n" + body, nil
}
