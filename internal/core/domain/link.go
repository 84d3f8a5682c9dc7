package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// RelatedContentHeading is the section heading the synchronizer
// maintains inside target documents. The heading text must match
// exactly for an existing section to be recognised.
const RelatedContentHeading = "## Related Content"

// RelatedLink is a single line inside a document's Related Content
// section. Within one section, Path values are unique.
type RelatedLink struct {
	// Title is the link display text.
	Title string

	// Path is the repository-relative link target.
	Path string

	// Reason is the reciprocal reason label after the link.
	Reason string
}

// Line renders the link in its canonical form:
//
//	- [title](path) - reason
func (l RelatedLink) Line() string {
	return fmt.Sprintf("- [%s](%s) - %s", l.Title, l.Path, l.Reason)
}

var relatedLinkPattern = regexp.MustCompile(`^-\s+\[([^\]]*)\]\(([^)]+)\)(?:\s+-\s+(.*))?$`)

// ParseRelatedLink parses a canonical link line. Returns false for
// lines that are not related-content links.
func ParseRelatedLink(line string) (RelatedLink, bool) {
	m := relatedLinkPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return RelatedLink{}, false
	}
	return RelatedLink{
		Title:  m[1],
		Path:   m[2],
		Reason: strings.TrimSpace(m[3]),
	}, true
}
