package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrScanFailed indicates the content root is unreadable.
	// Fatal: aborts the whole indexing run.
	ErrScanFailed = errors.New("content root scan failed")

	// ErrDocumentParse indicates a single document is malformed.
	// Recovered: the document is skipped and the scan continues.
	ErrDocumentParse = errors.New("document parse failed")

	// ErrTargetRead indicates a synchronization target could not be
	// read. Recovered: the target is skipped, others still run.
	ErrTargetRead = errors.New("target read failed")

	// ErrTargetWrite indicates a synchronization target could not be
	// written. Recovered: the target is skipped, others still run.
	ErrTargetWrite = errors.New("target write failed")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
