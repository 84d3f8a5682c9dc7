// Package file provides file-based configuration storage using TOML.
//
// Configuration lives in ~/.relink/config.toml. Nested tables are
// flattened into dot-notation keys, so the scoring policy is addressed
// as "match.tag_weight", "match.similarity_threshold", and so on.
package file
