package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

var (
	syncTitle  string
	syncReason string
)

var syncCmd = &cobra.Command{
	Use:   "sync [new-doc-path] [target-path...]",
	Short: "Insert reciprocal links into target documents",
	Long: `Non-interactive synchronization for scripts and front-ends: each
target document gains a Related Content link back to the new document.

Targets already linking to the document are skipped; a failing target
is reported and does not stop the others. Re-running is safe.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncTitle, "title", "", "new document title (default: derived from its path)")
	syncCmd.Flags().StringVar(&syncReason, "reason", "", "explicit forward match reason for all targets")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	index, err := indexerService.BuildIndex(ctx, contentRoot)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	newPath := args[0]
	title := syncTitle
	if title == "" {
		if pos, ok := index.Position(newPath); ok {
			title = index.Documents[pos].Title
		} else {
			title = domain.TitleFromPath(newPath)
		}
	}

	// Build synthetic candidates for the named targets, resolving
	// each against the index for its storage path.
	approved := make([]domain.MatchCandidate, 0, len(args)-1)
	for _, targetPath := range args[1:] {
		pos, ok := index.Position(targetPath)
		if !ok {
			return fmt.Errorf("%w: target %s is not in the index", domain.ErrNotFound, targetPath)
		}
		approved = append(approved, domain.MatchCandidate{
			Document: index.Documents[pos],
			Reason:   domain.MatchReason(syncReason),
		})
	}

	results := synchronizerService.Synchronize(ctx, domain.NewDocument{Title: title, Path: newPath}, approved)

	var failures int
	for _, result := range results {
		if result.Outcome == domain.OutcomeFailed {
			failures++
			cmd.Printf("  %-40s FAILED: %v\n", result.Path, result.Err)
			continue
		}
		cmd.Printf("  %-40s %s\n", result.Path, result.Outcome)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d targets failed", failures, len(results))
	}
	return nil
}
