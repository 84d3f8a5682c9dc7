package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("round-trips documents", func(t *testing.T) {
		store := NewStore()

		require.NoError(t, store.WriteDocument(context.Background(), "hipaa/audit.md", "content"))

		raw, err := store.ReadDocument(context.Background(), "hipaa/audit.md")
		require.NoError(t, err)
		assert.Equal(t, "content", raw)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("missing document fails", func(t *testing.T) {
		_, err := NewStore().ReadDocument(context.Background(), "nope.md")
		assert.Error(t, err)
	})

	t.Run("list tree is sorted and synthesizes directories", func(t *testing.T) {
		store := NewStore()
		ctx := context.Background()
		require.NoError(t, store.WriteDocument(ctx, "procedures/backup.md", "p"))
		require.NoError(t, store.WriteDocument(ctx, "hipaa/documentation/audit.md", "a"))
		require.NoError(t, store.WriteDocument(ctx, "hipaa/access.md", "a"))

		entries, err := store.ListTree(ctx, "")
		require.NoError(t, err)

		var paths []string
		dirs := make(map[string]bool)
		for _, e := range entries {
			paths = append(paths, e.Path)
			if e.IsDir {
				dirs[e.Path] = true
			}
		}
		assert.Equal(t, []string{
			"hipaa",
			"hipaa/access.md",
			"hipaa/documentation",
			"hipaa/documentation/audit.md",
			"procedures",
			"procedures/backup.md",
		}, paths)
		assert.True(t, dirs["hipaa"])
		assert.True(t, dirs["hipaa/documentation"])
		assert.False(t, dirs["hipaa/access.md"])
	})

	t.Run("ordering is stable across calls", func(t *testing.T) {
		store := NewStore()
		ctx := context.Background()
		for _, p := range []string{"c.md", "a.md", "b.md"} {
			require.NoError(t, store.WriteDocument(ctx, p, "x"))
		}

		first, err := store.ListTree(ctx, "")
		require.NoError(t, err)
		second, err := store.ListTree(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("write replaces content", func(t *testing.T) {
		store := NewStore()
		ctx := context.Background()
		require.NoError(t, store.WriteDocument(ctx, "doc.md", "old"))
		require.NoError(t, store.WriteDocument(ctx, "doc.md", "new"))

		raw, err := store.ReadDocument(ctx, "doc.md")
		require.NoError(t, err)
		assert.Equal(t, "new", raw)
		assert.Equal(t, 1, store.Len())
	})
}
