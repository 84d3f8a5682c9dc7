package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func paths(entries []driven.TreeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestStore_ListTree(t *testing.T) {
	t.Run("enumerates depth-first with sorted siblings", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "hipaa/documentation/audit.md", "a")
		writeFile(t, root, "hipaa/access.md", "a")
		writeFile(t, root, "procedures/backup.md", "p")

		entries, err := New().ListTree(context.Background(), root)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"hipaa",
			"hipaa/access.md",
			"hipaa/documentation",
			"hipaa/documentation/audit.md",
			"procedures",
			"procedures/backup.md",
		}, paths(entries))
	})

	t.Run("ordering is stable across calls", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "b.md", "b")
		writeFile(t, root, "a.md", "a")
		writeFile(t, root, "c.md", "c")

		store := New()
		first, err := store.ListTree(context.Background(), root)
		require.NoError(t, err)
		second, err := store.ListTree(context.Background(), root)
		require.NoError(t, err)

		assert.Equal(t, paths(first), paths(second))
	})

	t.Run("hidden entries are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, ".git/config", "x")
		writeFile(t, root, ".hidden.md", "x")
		writeFile(t, root, "visible.md", "v")

		entries, err := New().ListTree(context.Background(), root)

		require.NoError(t, err)
		assert.Equal(t, []string{"visible.md"}, paths(entries))
	})

	t.Run("directories are flagged", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "hipaa/doc.md", "d")

		entries, err := New().ListTree(context.Background(), root)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].IsDir)
		assert.False(t, entries[1].IsDir)
	})

	t.Run("storage paths resolve to real files", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "hipaa/doc.md", "content")

		entries, err := New().ListTree(context.Background(), root)

		require.NoError(t, err)
		for _, e := range entries {
			if e.IsDir {
				continue
			}
			data, err := os.ReadFile(e.StoragePath)
			require.NoError(t, err)
			assert.Equal(t, "content", string(data))
		}
	})

	t.Run("missing root fails", func(t *testing.T) {
		_, err := New().ListTree(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("file root fails", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "file.md", "x")

		_, err := New().ListTree(context.Background(), filepath.Join(root, "file.md"))
		assert.Error(t, err)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New().ListTree(ctx, t.TempDir())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_ReadDocument(t *testing.T) {
	t.Run("reads whole file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "doc.md", "---\ntitle: T\n---\nbody\n")

		raw, err := New().ReadDocument(context.Background(), filepath.Join(root, "doc.md"))

		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: T\n---\nbody\n", raw)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := New().ReadDocument(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		assert.Error(t, err)
	})
}

func TestStore_WriteDocument(t *testing.T) {
	t.Run("replaces content", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "doc.md")
		writeFile(t, root, "doc.md", "old")

		err := New().WriteDocument(context.Background(), target, "new content")

		require.NoError(t, err)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new content", string(data))
	})

	t.Run("creates a new file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "fresh.md")

		err := New().WriteDocument(context.Background(), target, "hello")

		require.NoError(t, err)
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "doc.md")

		require.NoError(t, New().WriteDocument(context.Background(), target, "x"))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "doc.md", entries[0].Name())
	})

	t.Run("missing directory fails without partial writes", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "missing", "doc.md")

		err := New().WriteDocument(context.Background(), target, "x")

		require.Error(t, err)
		_, statErr := os.Stat(target)
		assert.True(t, os.IsNotExist(statErr))
	})
}
