package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the content tree for new documents",
	Long: `Watches the content tree and runs a discrete suggestion pass for
every markdown document created while watching. Each pass rebuilds the
index from scratch; nothing is kept between passes.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch every directory in the tree; fsnotify is not recursive.
	if err := addWatchDirs(watcher, contentRoot); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", contentRoot)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				handleCreate(ctx, cmd, watcher, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// addWatchDirs registers the root and all its subdirectories.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// handleCreate reacts to a created path: new directories join the
// watch set, new markdown documents trigger a suggestion pass.
func handleCreate(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher, created string) {
	info, err := os.Stat(created)
	if err != nil {
		return
	}
	if info.IsDir() {
		if err := watcher.Add(created); err != nil {
			logger.Warn("Cannot watch %s: %v", created, err)
		}
		return
	}

	ext := strings.ToLower(filepath.Ext(created))
	if ext != ".md" && ext != ".markdown" {
		return
	}

	rel, err := filepath.Rel(contentRoot, created)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	cmd.Printf("\nNew document: %s\n", rel)

	// One discrete batch pass per creation event.
	index, err := indexerService.BuildIndex(ctx, contentRoot)
	if err != nil {
		logger.Warn("Index pass failed: %v", err)
		return
	}

	desc, err := descriptorFromIndex(index, rel)
	if err != nil {
		// The file may still be mid-write; skip this event.
		logger.Warn("Cannot describe %s: %v", rel, err)
		return
	}

	matches := matcherService.FindRelated(desc, index, suggestLimit)
	renderSuggestions(cmd, matches)

	if len(matches) > 0 {
		cmd.Printf("Run 'relink sync %s %s' to link them.\n",
			rel, suggestionPaths(matches))
	}
}

// suggestionPaths joins match paths for the sync hint.
func suggestionPaths(matches []domain.MatchCandidate) string {
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Document.Path
	}
	return strings.Join(paths, " ")
}
