// Package frontmatter implements the metadata codec for YAML
// frontmatter blocks delimited by "---" lines.
//
// Parsing keeps the raw block text alongside the ordered fields, so a
// document whose metadata was never mutated reassembles byte-for-byte.
package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/relink-labs/relink-cli/internal/core/domain"
	"github.com/relink-labs/relink-cli/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.MetadataCodec = (*Codec)(nil)

const delimiter = "---"

// Codec parses and serialises YAML frontmatter.
type Codec struct{}

// New creates a new frontmatter codec.
func New() *Codec {
	return &Codec{}
}

// Parse splits raw document text into its frontmatter and body.
//
// A document starts a frontmatter block with a "---" line at the very
// top; the block runs to the next "---" line. Documents without a
// block yield empty metadata and the full text as body. A block that
// is opened but never closed, or whose YAML is invalid, is a parse
// error.
func (c *Codec) Parse(raw string) (*domain.Metadata, string, error) {
	if !strings.HasPrefix(raw, delimiter+"\n") {
		return &domain.Metadata{}, raw, nil
	}

	rest := strings.TrimPrefix(raw, delimiter+"\n")
	idx := findClosingDelimiter(rest)
	if idx < 0 {
		return nil, "", fmt.Errorf("%w: unterminated frontmatter block", domain.ErrDocumentParse)
	}

	block := rest[:idx]
	body := rest[idx+len(delimiter)+1:] // skip "---\n"

	fields, err := parseFields(block)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrDocumentParse, err)
	}

	meta := &domain.Metadata{
		Fields: fields,
		Raw:    block,
	}
	return meta, body, nil
}

// Serialize reassembles a document from metadata and body.
//
// An untouched header is written back verbatim from the raw block.
// A mutated header is re-marshalled field by field in order. A
// document with no header fields and no raw block is just the body.
func (c *Codec) Serialize(meta *domain.Metadata, body string) (string, error) {
	if meta == nil || (meta.Raw == "" && meta.Len() == 0) {
		return body, nil
	}

	block := meta.Raw
	if meta.Dirty() {
		var err error
		block, err = marshalFields(meta.Fields)
		if err != nil {
			return "", err
		}
	}

	return delimiter + "\n" + block + delimiter + "\n" + body, nil
}

// findClosingDelimiter returns the offset of the closing "---" line
// within text, or -1 if none exists. The delimiter must sit on its own
// line.
func findClosingDelimiter(text string) int {
	if strings.HasPrefix(text, delimiter+"\n") {
		return 0
	}
	idx := strings.Index(text, "\n"+delimiter+"\n")
	if idx < 0 {
		return -1
	}
	return idx + 1
}

// parseFields decodes the block into ordered key/value fields using
// the yaml node tree, which preserves authoring order.
func parseFields(block string) ([]domain.MetadataField, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a mapping")
	}

	fields := make([]domain.MetadataField, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("field %q: %w", keyNode.Value, err)
		}
		fields = append(fields, domain.MetadataField{
			Key:   keyNode.Value,
			Value: value,
		})
	}
	return fields, nil
}

// marshalFields re-emits mutated fields as a YAML mapping in field
// order.
func marshalFields(fields []domain.MetadataField) (string, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, field := range fields {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: field.Key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(field.Value); err != nil {
			return "", fmt.Errorf("field %q: %w", field.Key, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}

	out, err := yaml.Marshal(mapping)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
