package domain

import "time"

// Direction is the kind of batch run.
type Direction string

const (
	// DirectionExport extracts payload entries into intermediate text files.
	DirectionExport Direction = "export"

	// DirectionImport merges intermediate text files back into documents.
	DirectionImport Direction = "import"
)

// OutcomeState is the terminal state of one document within a batch.
type OutcomeState string

const (
	// OutcomeExported means an intermediate file was written.
	OutcomeExported OutcomeState = "exported"

	// OutcomeImported means a rewritten document was written.
	OutcomeImported OutcomeState = "imported"

	// OutcomeSkipped means the document was left alone for a known reason.
	OutcomeSkipped OutcomeState = "skipped"

	// OutcomeFailed means an unexpected error occurred. It counts as a skip.
	OutcomeFailed OutcomeState = "failed"
)

// Succeeded reports whether the state is a successful terminal state.
func (s OutcomeState) Succeeded() bool {
	return s == OutcomeExported || s == OutcomeImported
}

// DocumentOutcome records what happened to one document.
type DocumentOutcome struct {
	Name   string
	State  OutcomeState
	Lines  int
	Reason string
}

// BatchReport aggregates the outcomes of one export or import run.
type BatchReport struct {
	RunID      string
	Direction  Direction
	Method     Method
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []DocumentOutcome
}

// Add appends an outcome.
func (r *BatchReport) Add(o DocumentOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Total returns the number of documents considered.
func (r *BatchReport) Total() int {
	return len(r.Outcomes)
}

// Processed returns the number of documents that reached a successful state.
func (r *BatchReport) Processed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State.Succeeded() {
			n++
		}
	}
	return n
}

// Skipped returns the number of skipped or failed documents.
func (r *BatchReport) Skipped() int {
	return r.Total() - r.Processed()
}

// Duration returns how long the run took.
func (r *BatchReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
