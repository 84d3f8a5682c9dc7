// Package filesystem implements the document store over a local
// directory tree.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store reads and writes documents under a filesystem root.
//
// Enumeration order is deterministic for a fixed tree state: entries
// are visited depth-first with siblings sorted by name, so document
// discovery order (and the matcher tie-breaks derived from it) is
// reproducible across runs.
type Store struct{}

// New creates a new filesystem document store.
func New() *Store {
	return &Store{}
}

// ListTree enumerates the tree under root depth-first. Paths in the
// returned entries are root-relative and slash-separated; hidden
// entries (dot-prefixed) are skipped.
func (s *Store) ListTree(ctx context.Context, root string) ([]driven.TreeEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var entries []driven.TreeEntry
	if err := s.walk(ctx, root, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// walk recurses one directory level. os.ReadDir returns entries
// sorted by name, which provides the deterministic ordering.
func (s *Store) walk(ctx context.Context, root, rel string, entries *[]driven.TreeEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(root, filepath.FromSlash(rel))
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("read root: %w", err)
		}
		// An unreadable subdirectory is not fatal to the scan.
		return nil
	}

	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	for _, entry := range dirEntries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		entryRel := entry.Name()
		if rel != "" {
			entryRel = rel + "/" + entry.Name()
		}

		*entries = append(*entries, driven.TreeEntry{
			Path:        entryRel,
			StoragePath: filepath.Join(root, filepath.FromSlash(entryRel)),
			IsDir:       entry.IsDir(),
		})

		if entry.IsDir() {
			if err := s.walk(ctx, root, entryRel, entries); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadDocument returns the whole raw text of a document.
func (s *Store) ReadDocument(ctx context.Context, storagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(storagePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteDocument replaces a document atomically: content is written to
// a temporary file in the same directory and renamed over the target,
// so a failed write never leaves a partially-written document.
func (s *Store) WriteDocument(ctx context.Context, storagePath string, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(storagePath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(storagePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, storagePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
