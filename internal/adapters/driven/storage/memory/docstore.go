// Package memory implements the document store over an in-memory map,
// for embedding the engine without a filesystem and for tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is an in-memory implementation of driven.DocumentStore.
//
// Documents are keyed by slash-separated path; directory entries are
// synthesized from the path segments. Enumeration is sorted by path,
// so discovery order is deterministic like the filesystem store's.
type Store struct {
	mu        sync.RWMutex
	documents map[string]string
}

// NewStore creates an empty in-memory document store.
func NewStore() *Store {
	return &Store{documents: make(map[string]string)}
}

// ListTree enumerates all documents and their parent directories in
// sorted path order. The root argument is ignored: the store holds a
// single tree.
func (s *Store) ListTree(_ context.Context, _ string) ([]driven.TreeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.documents))
	for p := range s.documents {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var entries []driven.TreeEntry
	seenDirs := make(map[string]bool)
	for _, p := range paths {
		segments := strings.Split(p, "/")
		for i := 1; i < len(segments); i++ {
			dir := strings.Join(segments[:i], "/")
			if seenDirs[dir] {
				continue
			}
			seenDirs[dir] = true
			entries = append(entries, driven.TreeEntry{
				Path:        dir,
				StoragePath: dir,
				IsDir:       true,
			})
		}
		entries = append(entries, driven.TreeEntry{
			Path:        p,
			StoragePath: p,
		})
	}
	return entries, nil
}

// ReadDocument returns the stored raw text for a path.
func (s *Store) ReadDocument(_ context.Context, storagePath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.documents[storagePath]
	if !ok {
		return "", fmt.Errorf("document %s not found", storagePath)
	}
	return raw, nil
}

// WriteDocument stores raw text under a path. Writes are whole-document
// replacements, matching the atomicity the engine expects.
func (s *Store) WriteDocument(_ context.Context, storagePath string, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[storagePath] = raw
	return nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
