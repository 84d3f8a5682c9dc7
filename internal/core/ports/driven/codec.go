package driven

import "github.com/relink-labs/relink-cli/internal/core/domain"

// MetadataCodec parses and serialises the structured key/value block at
// the top of each document.
//
// Parse and Serialize round-trip byte-for-byte when neither the
// metadata nor the body is changed.
type MetadataCodec interface {
	// Parse splits raw document text into its metadata block and body.
	// Documents without a metadata block yield an empty Metadata and
	// the full text as body.
	Parse(raw string) (*domain.Metadata, string, error)

	// Serialize reassembles a document from its metadata block and
	// body. An untouched Metadata is written back verbatim.
	Serialize(meta *domain.Metadata, body string) (string, error)
}
