// Package domain defines the core business entities for Relink.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: An indexed knowledge-base document
//   - ContentIndex: The per-run, immutable view of the document tree
//   - MatchCandidate: A scored relationship suggestion
//   - RelatedLink: A single reciprocal link line inside a document body
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
