package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

var indexJSON bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect the content index",
	Long: `Walks the content tree once and prints a summary of the resulting
index: documents in discovery order, plus tag and category statistics.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexJSON, "json", false, "output the index as JSON")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	index, err := indexerService.BuildIndex(ctx, contentRoot)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	if indexJSON {
		return outputIndexJSON(cmd, index)
	}

	cmd.Printf("Indexed %d documents under %s\n\n", index.Len(), contentRoot)
	for i := range index.Documents {
		doc := &index.Documents[i]
		cmd.Printf("  %s\n", doc.Path)
		cmd.Printf("      %s [%s] %s\n", doc.Title, doc.Kind, doc.CategoryKey())
		if len(doc.Tags) > 0 {
			cmd.Printf("      tags: %v\n", doc.Tags)
		}
	}

	tags := make([]string, 0, len(index.ByTag))
	for tag := range index.ByTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	cmd.Printf("\nTags (%d):\n", len(tags))
	for _, tag := range tags {
		cmd.Printf("  %-20s %d\n", tag, len(index.ByTag[tag]))
	}
	return nil
}

// indexedDocument is the JSON shape for one index entry.
type indexedDocument struct {
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	Kind        string   `json:"kind"`
}

func outputIndexJSON(cmd *cobra.Command, index *domain.ContentIndex) error {
	docs := make([]indexedDocument, index.Len())
	for i := range index.Documents {
		doc := &index.Documents[i]
		docs[i] = indexedDocument{
			Path:        doc.Path,
			Title:       doc.Title,
			Description: doc.Description,
			Tags:        doc.Tags,
			Category:    doc.Category,
			Subcategory: doc.Subcategory,
			Kind:        string(doc.Kind),
		}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
