// Package cli provides the cobra command-line adapter for Relink.
//
// The CLI is the content generation front-end: it drives the indexer,
// matcher, and synchronizer services through their driving ports and
// owns all interactive presentation.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relink-labs/relink-cli/internal/adapters/driven/codec/frontmatter"
	configfile "github.com/relink-labs/relink-cli/internal/adapters/driven/config/file"
	"github.com/relink-labs/relink-cli/internal/adapters/driven/storage/filesystem"
	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
	"github.com/relink-labs/relink-cli/internal/core/services"
	"github.com/relink-labs/relink-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	rootVerbose bool
	contentRoot string
)

// Package-level services wired by initServices. Tests may replace
// them with fakes.
var (
	indexerService      driving.IndexerService
	matcherService      driving.MatcherService
	synchronizerService driving.SynchronizerService
)

var rootCmd = &cobra.Command{
	Use:   "relink",
	Short: "Content relationship engine for a markdown knowledge base",
	Long: `Relink manages the relationships inside a tree of markdown documents.

It indexes every document's metadata, tags, and category placement,
suggests which existing documents are related to a new one, and keeps
reciprocal "Related Content" links synchronized across the tree.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(rootVerbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&contentRoot, "root", "r", "", "content tree root (default: configured root or current directory)")
}

// initServices wires the default adapters into the core services.
// Already-wired services (e.g. test fakes) are left untouched.
func initServices() error {
	if indexerService != nil && matcherService != nil && synchronizerService != nil {
		return nil
	}

	store := filesystem.New()
	codec := frontmatter.New()

	policy := domain.DefaultMatchPolicy()
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		logger.Warn("Config unavailable, using default match policy: %v", err)
	} else {
		policy = configStore.MatchPolicy()
		if contentRoot == "" {
			contentRoot = configStore.GetString("content.root")
		}
	}
	if contentRoot == "" {
		contentRoot = "."
	}

	indexerService = services.NewIndexerService(store, codec)
	matcherService = services.NewMatcherService(policy)
	synchronizerService = services.NewSynchronizerService(store, codec)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
