package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	t.Run("registers all subcommands", func(t *testing.T) {
		expected := []string{"index", "suggest", "sync", "new", "watch", "mcp", "version"}

		names := make(map[string]bool)
		for _, cmd := range rootCmd.Commands() {
			names[cmd.Name()] = true
		}

		for _, name := range expected {
			assert.True(t, names[name], "command %q not registered", name)
		}
	})

	t.Run("persistent flags", func(t *testing.T) {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup("root"))
	})

	t.Run("version command prints the version", func(t *testing.T) {
		setupTestServices(t, &fakeIndexer{}, &fakeMatcher{}, &fakeSynchronizer{})

		out, err := executeCommand(t, "version")

		require.NoError(t, err)
		assert.Contains(t, out, "relink version")
	})
}
