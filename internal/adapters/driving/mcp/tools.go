package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/relink-labs/relink-cli/internal/core/domain"
)

// SuggestInput is the input schema for the suggest_related tool.
type SuggestInput struct {
	Root        string   `json:"root" jsonschema:"content tree root directory"`
	Title       string   `json:"title" jsonschema:"candidate document title"`
	Description string   `json:"description,omitempty" jsonschema:"candidate document description"`
	Tags        []string `json:"tags,omitempty" jsonschema:"candidate tags"`
	Category    string   `json:"category,omitempty" jsonschema:"category or category/subcategory placement"`
	Kind        string   `json:"kind,omitempty" jsonschema:"document kind: procedure, compliance, or general"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of suggestions (default 5)"`
}

// SuggestOutput is the output schema for the suggest_related tool.
type SuggestOutput struct {
	Suggestions []SuggestionOutput `json:"suggestions"`
	Count       int                `json:"count"`
}

// SuggestionOutput represents a single ranked suggestion.
type SuggestionOutput struct {
	Path      string  `json:"path"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
	Reason    string  `json:"reason"`
}

// SyncInput is the input schema for the sync_links tool.
type SyncInput struct {
	Root     string   `json:"root" jsonschema:"content tree root directory"`
	NewTitle string   `json:"new_title" jsonschema:"title of the new document being linked"`
	NewPath  string   `json:"new_path" jsonschema:"repository-relative path of the new document"`
	Targets  []string `json:"targets" jsonschema:"repository-relative paths of approved target documents"`
	Reason   string   `json:"reason,omitempty" jsonschema:"explicit forward match reason for all targets"`
}

// SyncOutput is the output schema for the sync_links tool.
type SyncOutput struct {
	Results []SyncResultOutput `json:"results"`
}

// SyncResultOutput reports the outcome for one target.
type SyncResultOutput struct {
	Path    string `json:"path"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_related",
		Description: "Suggest documents related to a candidate document",
	}, s.handleSuggest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_links",
		Description: "Insert reciprocal links into approved target documents",
	}, s.handleSync)
}

// handleSuggest handles the suggest_related tool invocation.
func (s *Server) handleSuggest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestInput,
) (*mcp.CallToolResult, SuggestOutput, error) {
	index, err := s.ports.Indexer.BuildIndex(ctx, input.Root)
	if err != nil {
		return nil, SuggestOutput{}, err
	}

	category, subcategory := input.Category, ""
	if i := strings.Index(input.Category, "/"); i >= 0 {
		category, subcategory = input.Category[:i], input.Category[i+1:]
	}
	kind, _ := domain.ParseDocumentKind(input.Kind)

	desc := domain.DocumentDescriptor{
		Title:       input.Title,
		Description: input.Description,
		Tags:        normaliseInputTags(input.Tags),
		Category:    category,
		Subcategory: subcategory,
		Kind:        kind,
	}

	matches := s.ports.Matcher.FindRelated(desc, index, input.Limit)

	output := SuggestOutput{
		Suggestions: make([]SuggestionOutput, len(matches)),
		Count:       len(matches),
	}
	for i, m := range matches {
		output.Suggestions[i] = SuggestionOutput{
			Path:      m.Document.Path,
			Title:     m.Document.Title,
			Relevance: m.Relevance,
			Reason:    string(m.Reason),
		}
	}
	return nil, output, nil
}

// handleSync handles the sync_links tool invocation.
func (s *Server) handleSync(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SyncInput,
) (*mcp.CallToolResult, SyncOutput, error) {
	index, err := s.ports.Indexer.BuildIndex(ctx, input.Root)
	if err != nil {
		return nil, SyncOutput{}, err
	}

	approved := make([]domain.MatchCandidate, 0, len(input.Targets))
	for _, targetPath := range input.Targets {
		pos, ok := index.Position(targetPath)
		if !ok {
			return nil, SyncOutput{}, domain.ErrNotFound
		}
		approved = append(approved, domain.MatchCandidate{
			Document: index.Documents[pos],
			Reason:   domain.MatchReason(input.Reason),
		})
	}

	newDoc := domain.NewDocument{Title: input.NewTitle, Path: input.NewPath}
	results := s.ports.Synchronizer.Synchronize(ctx, newDoc, approved)

	output := SyncOutput{Results: make([]SyncResultOutput, len(results))}
	for i, result := range results {
		out := SyncResultOutput{
			Path:    result.Path,
			Outcome: string(result.Outcome),
		}
		if result.Err != nil {
			out.Error = result.Err.Error()
		}
		output.Results[i] = out
	}
	return nil, output, nil
}

// normaliseInputTags lower-cases and trims caller-provided tags.
func normaliseInputTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
