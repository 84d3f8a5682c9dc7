package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

var (
	suggestLimit       int
	suggestJSON        bool
	suggestTitle       string
	suggestDescription string
	suggestTags        []string
	suggestCategory    string
	suggestKind        string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [path]",
	Short: "Suggest related documents",
	Long: `Scores a candidate document against the content index and prints
ranked suggestions with their match reasons.

With a path argument the candidate is read from an existing document
in the tree. Without one, the candidate is described via flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 5, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	suggestCmd.Flags().StringVar(&suggestTitle, "title", "", "candidate title")
	suggestCmd.Flags().StringVar(&suggestDescription, "description", "", "candidate description")
	suggestCmd.Flags().StringSliceVar(&suggestTags, "tag", nil, "candidate tag (repeatable)")
	suggestCmd.Flags().StringVar(&suggestCategory, "category", "", "candidate category or category/subcategory")
	suggestCmd.Flags().StringVar(&suggestKind, "kind", "", "candidate kind (procedure, compliance, general)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	index, err := indexerService.BuildIndex(ctx, contentRoot)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	var desc domain.DocumentDescriptor
	if len(args) == 1 {
		d, err := descriptorFromIndex(index, args[0])
		if err != nil {
			return err
		}
		desc = d
	} else {
		desc = descriptorFromFlags()
		if desc.Title == "" {
			return fmt.Errorf("%w: either a document path or --title is required", domain.ErrInvalidInput)
		}
	}

	matches := matcherService.FindRelated(desc, index, suggestLimit)

	if suggestJSON {
		return outputSuggestionsJSON(cmd, matches)
	}
	renderSuggestions(cmd, matches)
	return nil
}

// descriptorFromIndex builds the candidate descriptor from a document
// already present in the index. Its own path is excluded from matches.
func descriptorFromIndex(index *domain.ContentIndex, path string) (domain.DocumentDescriptor, error) {
	pos, ok := index.Position(path)
	if !ok {
		return domain.DocumentDescriptor{}, fmt.Errorf("%w: document %s is not in the index", domain.ErrNotFound, path)
	}
	doc := &index.Documents[pos]
	return domain.DocumentDescriptor{
		Title:       doc.Title,
		Description: doc.Description,
		Tags:        doc.Tags,
		Category:    doc.Category,
		Subcategory: doc.Subcategory,
		Kind:        doc.Kind,
		Path:        doc.Path,
		Body:        doc.Body,
	}, nil
}

// descriptorFromFlags builds the candidate descriptor from command
// flags.
func descriptorFromFlags() domain.DocumentDescriptor {
	category, subcategory := suggestCategory, ""
	if i := strings.Index(suggestCategory, "/"); i >= 0 {
		category, subcategory = suggestCategory[:i], suggestCategory[i+1:]
	}

	kind, _ := domain.ParseDocumentKind(suggestKind)

	tags := make([]string, 0, len(suggestTags))
	for _, tag := range suggestTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.DocumentDescriptor{
		Title:       suggestTitle,
		Description: suggestDescription,
		Tags:        tags,
		Category:    category,
		Subcategory: subcategory,
		Kind:        kind,
	}
}

// suggestionOutput is the JSON shape for one suggestion.
type suggestionOutput struct {
	Path      string  `json:"path"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
	Reason    string  `json:"reason"`
}

func outputSuggestionsJSON(cmd *cobra.Command, matches []domain.MatchCandidate) error {
	out := make([]suggestionOutput, len(matches))
	for i, m := range matches {
		out[i] = suggestionOutput{
			Path:      m.Document.Path,
			Title:     m.Document.Title,
			Relevance: m.Relevance,
			Reason:    string(m.Reason),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

var (
	suggestionTitleStyle  = lipgloss.NewStyle().Bold(true)
	suggestionReasonStyle = lipgloss.NewStyle().Faint(true)
	suggestionScoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// renderSuggestions prints a ranked, styled suggestion list.
func renderSuggestions(cmd *cobra.Command, matches []domain.MatchCandidate) {
	if len(matches) == 0 {
		cmd.Println("No related documents found.")
		return
	}

	cmd.Println("Related documents:")
	cmd.Println()
	for i, m := range matches {
		cmd.Printf("  [%d] %s %s\n", i+1,
			suggestionTitleStyle.Render(m.Document.Title),
			suggestionScoreStyle.Render(fmt.Sprintf("(%.2f)", m.Relevance)))
		cmd.Printf("      %s\n", m.Document.Path)
		cmd.Printf("      %s\n", suggestionReasonStyle.Render(string(m.Reason)))
		cmd.Println()
	}
}
