package domain

// NewDocument identifies the freshly created document that approved
// targets link back to.
type NewDocument struct {
	// Title is the new document's display title.
	Title string

	// Path is the repository-relative path used in back-links.
	Path string
}

// TargetOutcome is the terminal state of one synchronization target.
type TargetOutcome string

const (
	// OutcomeSkipped means the target already links to the new
	// document. Nothing was written.
	OutcomeSkipped TargetOutcome = "skipped"

	// OutcomeSectionAppended means the link was inserted into an
	// existing Related Content section.
	OutcomeSectionAppended TargetOutcome = "section-appended"

	// OutcomeSectionCreated means a new Related Content section was
	// created for the link.
	OutcomeSectionCreated TargetOutcome = "section-created"

	// OutcomeFailed means the target could not be read or written.
	// Other targets are unaffected.
	OutcomeFailed TargetOutcome = "failed"
)

// TargetResult reports the outcome for one synchronization target.
// Failures are reported here rather than aborting the batch, so the
// front-end can decide whether to retry interactively.
type TargetResult struct {
	// Path is the target document's repository-relative path.
	Path string

	// Outcome is the terminal state for this target.
	Outcome TargetOutcome

	// Err is non-nil only when Outcome is OutcomeFailed.
	Err error
}
