package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/relink-labs/relink-cli/internal/adapters/driven/codec/frontmatter"
	"github.com/relink-labs/relink-cli/internal/adapters/driven/storage/filesystem"
	"github.com/relink-labs/relink-cli/internal/core/domain"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a document and link it into the knowledge base",
	Long: `Interactive document generator: collects metadata, suggests related
documents from the content index, lets you choose which suggestions to
keep, writes the new document, and synchronizes reciprocal links into
the chosen targets.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

// newDocumentInput holds the collected form values.
type newDocumentInput struct {
	Title       string
	Description string
	Tags        string
	Category    string
	Subcategory string
	Kind        string
	Filename    string
}

func runNew(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	input, err := collectMetadata()
	if err != nil {
		return err
	}

	desc := descriptorFromInput(input)

	index, err := indexerService.BuildIndex(ctx, contentRoot)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	matches := matcherService.FindRelated(desc, index, suggestLimit)

	approved, err := selectMatches(matches)
	if err != nil {
		return err
	}

	extra, err := collectManualLinks(index)
	if err != nil {
		return err
	}
	approved = append(approved, extra...)

	if err := writeNewDocument(ctx, desc, input); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	cmd.Printf("Created %s\n", desc.Path)

	if len(approved) == 0 {
		return nil
	}

	newDoc := domain.NewDocument{Title: desc.Title, Path: desc.Path}
	results := synchronizerService.Synchronize(ctx, newDoc, approved)
	for _, result := range results {
		if result.Outcome == domain.OutcomeFailed {
			cmd.Printf("  %-40s FAILED: %v\n", result.Path, result.Err)
			continue
		}
		cmd.Printf("  %-40s %s\n", result.Path, result.Outcome)
	}
	return nil
}

// collectMetadata runs the metadata form.
func collectMetadata() (*newDocumentInput, error) {
	input := &newDocumentInput{Kind: string(domain.KindGeneral)}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&input.Title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Description").
			Value(&input.Description),
		huh.NewInput().
			Title("Tags").
			Description("Comma-separated").
			Value(&input.Tags),
		huh.NewInput().
			Title("Category").
			Value(&input.Category).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("category is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Subcategory").
			Description("Optional").
			Value(&input.Subcategory),
		huh.NewSelect[string]().
			Title("Kind").
			Options(
				huh.NewOption("General", string(domain.KindGeneral)),
				huh.NewOption("Procedure", string(domain.KindProcedure)),
				huh.NewOption("Compliance", string(domain.KindCompliance)),
			).
			Value(&input.Kind),
		huh.NewInput().
			Title("Filename").
			Description("Without extension; default derived from title").
			Value(&input.Filename),
	)).WithShowHelp(true)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return input, nil
}

// descriptorFromInput converts form values into a matcher descriptor,
// deriving the new document's path from its placement and filename.
func descriptorFromInput(input *newDocumentInput) domain.DocumentDescriptor {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		filename = slugify(input.Title)
	}

	segments := []string{strings.TrimSpace(input.Category)}
	if sub := strings.TrimSpace(input.Subcategory); sub != "" {
		segments = append(segments, sub)
	}
	segments = append(segments, filename+".md")

	kind, _ := domain.ParseDocumentKind(input.Kind)

	var tags []string
	for _, tag := range strings.Split(input.Tags, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.DocumentDescriptor{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Tags:        tags,
		Category:    strings.TrimSpace(input.Category),
		Subcategory: strings.TrimSpace(input.Subcategory),
		Kind:        kind,
		Path:        path.Join(segments...),
	}
}

// selectMatches presents the ranked suggestions as a multi-select.
func selectMatches(matches []domain.MatchCandidate) ([]domain.MatchCandidate, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	options := make([]huh.Option[int], len(matches))
	for i, m := range matches {
		label := fmt.Sprintf("%s (%.2f, %s)", m.Document.Title, m.Relevance, m.Reason)
		options[i] = huh.NewOption(label, i)
	}

	var selected []int
	ms := huh.NewMultiSelect[int]().
		Title("Related documents").
		Description("Chosen documents gain a reciprocal link").
		Options(options...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(ms)).WithShowHelp(true).Run(); err != nil {
		return nil, err
	}

	approved := make([]domain.MatchCandidate, 0, len(selected))
	for _, idx := range selected {
		approved = append(approved, matches[idx])
	}
	return approved, nil
}

// collectManualLinks lets the author add targets the matcher missed,
// as synthetic candidates with an explicit reason.
func collectManualLinks(index *domain.ContentIndex) ([]domain.MatchCandidate, error) {
	var extra []domain.MatchCandidate
	for {
		var targetPath string
		input := huh.NewInput().
			Title("Extra related document path").
			Description("Leave empty to continue").
			Value(&targetPath)
		if err := huh.NewForm(huh.NewGroup(input)).WithShowHelp(true).Run(); err != nil {
			return nil, err
		}

		targetPath = strings.TrimSpace(targetPath)
		if targetPath == "" {
			return extra, nil
		}

		pos, ok := index.Position(targetPath)
		if !ok {
			fmt.Printf("  %s is not in the index, skipping\n", targetPath)
			continue
		}
		extra = append(extra, domain.MatchCandidate{
			Document: index.Documents[pos],
			Reason:   domain.MatchReason("Manually linked"),
		})
	}
}

// writeNewDocument serialises and writes the document itself.
// The engine mutates only the approved targets; the new document is
// owned by this front-end.
func writeNewDocument(ctx context.Context, desc domain.DocumentDescriptor, input *newDocumentInput) error {
	meta := &domain.Metadata{}
	meta.Set("id", uuid.New().String())
	meta.Set("title", desc.Title)
	if desc.Description != "" {
		meta.Set("description", desc.Description)
	}
	if len(desc.Tags) > 0 {
		tags := make([]any, len(desc.Tags))
		for i, tag := range desc.Tags {
			tags[i] = tag
		}
		meta.Set("tags", tags)
	}
	meta.Set("type", string(desc.Kind))

	body := fmt.Sprintf("\n# %s\n\n%s\n", desc.Title, desc.Description)

	codec := frontmatter.New()
	raw, err := codec.Serialize(meta, body)
	if err != nil {
		return err
	}

	storagePath := storagePathFor(desc.Path)
	if err := os.MkdirAll(filepath.Dir(storagePath), 0755); err != nil {
		return err
	}

	store := filesystem.New()
	return store.WriteDocument(ctx, storagePath, raw)
}

// storagePathFor resolves a repository-relative path against the
// content root.
func storagePathFor(rel string) string {
	return path.Join(contentRoot, rel)
}

// slugify turns a title into a filename slug.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
