package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
	"github.com/relink-labs/relink-cli/internal/core/ports/driving"
	"github.com/relink-labs/relink-cli/internal/logger"
)

// Ensure SynchronizerService implements the interface.
var _ driving.SynchronizerService = (*SynchronizerService)(nil)

// SynchronizerService inserts reciprocal links into approved target
// documents.
type SynchronizerService struct {
	store driven.DocumentStore
	codec driven.MetadataCodec
}

// NewSynchronizerService creates a new synchronizer service.
func NewSynchronizerService(store driven.DocumentStore, codec driven.MetadataCodec) *SynchronizerService {
	return &SynchronizerService{
		store: store,
		codec: codec,
	}
}

// Synchronize edits each approved target to gain a back-link to the
// new document.
//
// Targets are always re-read from storage at mutation time; the
// content index may be stale relative to concurrent edits. Each
// target fails independently: a read or write failure is logged,
// reported in its result, and never aborts the remaining targets.
// Re-running with the same inputs is idempotent.
func (s *SynchronizerService) Synchronize(
	ctx context.Context, newDoc domain.NewDocument, approved []domain.MatchCandidate,
) []domain.TargetResult {
	logger.Section("Link Synchronization")
	logger.Debug("New document: %q (%s), %d targets", newDoc.Title, newDoc.Path, len(approved))

	results := make([]domain.TargetResult, 0, len(approved))
	for _, target := range approved {
		result := s.synchronizeTarget(ctx, newDoc, target)
		if result.Err != nil {
			logger.Warn("Target %s failed: %v", result.Path, result.Err)
		} else {
			logger.Debug("Target %s: %s", result.Path, result.Outcome)
		}
		results = append(results, result)
	}
	return results
}

// synchronizeTarget runs the per-target state machine:
// Unvisited → Read → {Skipped | SectionAppended | SectionCreated} → Written | Failed.
func (s *SynchronizerService) synchronizeTarget(
	ctx context.Context, newDoc domain.NewDocument, target domain.MatchCandidate,
) domain.TargetResult {
	storagePath := target.Document.StoragePath
	if storagePath == "" {
		storagePath = target.Document.Path
	}
	result := domain.TargetResult{Path: target.Document.Path}

	raw, err := s.store.ReadDocument(ctx, storagePath)
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("%w: %v", domain.ErrTargetRead, err)
		return result
	}

	meta, body, err := s.codec.Parse(raw)
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("%w: %v", domain.ErrTargetRead, err)
		return result
	}

	link := domain.RelatedLink{
		Title:  newDoc.Title,
		Path:   newDoc.Path,
		Reason: target.Reason.ReciprocalLabel(),
	}

	newBody, outcome := upsertRelatedLink(body, link)
	result.Outcome = outcome
	if outcome == domain.OutcomeSkipped {
		return result
	}

	updated, err := s.codec.Serialize(meta, newBody)
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("%w: %v", domain.ErrTargetWrite, err)
		return result
	}
	if err := s.store.WriteDocument(ctx, storagePath, updated); err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Err = fmt.Errorf("%w: %v", domain.ErrTargetWrite, err)
		return result
	}
	return result
}

// upsertRelatedLink inserts the link into the body's Related Content
// section, creating the section when absent.
//
// If an existing section already references the link's path the body
// is returned unchanged with OutcomeSkipped: re-running
// synchronization never creates duplicate links.
func upsertRelatedLink(body string, link domain.RelatedLink) (string, domain.TargetOutcome) {
	lines := strings.Split(body, "\n")

	start, end := findRelatedSection(lines)
	if start < 0 {
		return insertNewSection(lines, link), domain.OutcomeSectionCreated
	}

	if sectionContainsPath(lines[start:end], link.Path) {
		return body, domain.OutcomeSkipped
	}

	// Insert as the first content line of the section, keeping any
	// blank line that follows the heading.
	insertAt := start + 1
	for insertAt < end && strings.TrimSpace(lines[insertAt]) == "" {
		insertAt++
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines[:insertAt]...)
	updated = append(updated, link.Line())
	updated = append(updated, lines[insertAt:]...)
	return strings.Join(updated, "\n"), domain.OutcomeSectionAppended
}

// findRelatedSection locates the Related Content section. Returns the
// heading line index and the exclusive end index, or (-1, -1) when no
// section exists. The section runs until the next heading of equal or
// higher rank, or the end of the body.
func findRelatedSection(lines []string) (start, end int) {
	start = -1
	for i, line := range lines {
		if strings.TrimSpace(line) == domain.RelatedContentHeading {
			start = i
			break
		}
	}
	if start < 0 {
		return -1, -1
	}

	for i := start + 1; i < len(lines); i++ {
		if headingRank(lines[i]) > 0 && headingRank(lines[i]) <= 2 {
			return start, i
		}
	}
	return start, len(lines)
}

// sectionContainsPath reports whether any link line in the section
// already targets the given path.
func sectionContainsPath(section []string, path string) bool {
	for _, line := range section {
		if link, ok := domain.ParseRelatedLink(line); ok && link.Path == path {
			return true
		}
	}
	return false
}

// insertNewSection appends a Related Content section holding exactly
// one link. The section goes immediately before the last top-level
// heading when the body has one beyond its opening title, so it is
// not appended after a trailing block; otherwise it goes at the very
// end of the body.
func insertNewSection(lines []string, link domain.RelatedLink) string {
	section := []string{domain.RelatedContentHeading, "", link.Line()}

	firstTop, lastTop := -1, -1
	for i, line := range lines {
		if headingRank(line) == 1 {
			if firstTop < 0 {
				firstTop = i
			}
			lastTop = i
		}
	}

	if lastTop >= 0 && lastTop != firstTop {
		updated := make([]string, 0, len(lines)+4)
		updated = append(updated, lines[:lastTop]...)
		updated = append(updated, section...)
		updated = append(updated, "")
		updated = append(updated, lines[lastTop:]...)
		return strings.Join(updated, "\n")
	}

	// Append at the end, separated by a single blank line.
	out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if out != "" {
		out += "\n\n"
	}
	return out + strings.Join(section, "\n") + "\n"
}

// headingRank returns the markdown heading level of a line, 0 for
// non-heading lines.
func headingRank(line string) int {
	trimmed := strings.TrimSpace(line)
	var rank int
	for rank < len(trimmed) && trimmed[rank] == '#' {
		rank++
	}
	if rank == 0 || rank > 6 {
		return 0
	}
	if rank == len(trimmed) || trimmed[rank] == ' ' || trimmed[rank] == '\t' {
		return rank
	}
	return 0
}
