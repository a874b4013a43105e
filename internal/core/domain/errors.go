package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedMethod indicates an unknown extraction method.
	ErrUnsupportedMethod = errors.New("unsupported method")

	// Batch Errors.

	// ErrDirectoryMissing indicates a required working directory does not exist.
	// It is the only error that aborts a whole batch.
	ErrDirectoryMissing = errors.New("directory missing")

	// Document Errors.
	// These are scoped to a single document and turn into a skipped outcome.

	// ErrPayloadMissing indicates the document has no payload field.
	ErrPayloadMissing = errors.New("payload missing")

	// ErrPayloadFormat indicates the payload does not have the shape
	// expected by the selected method.
	ErrPayloadFormat = errors.New("payload format error")

	// ErrCountMismatch indicates the intermediate line count differs from
	// the number of replaceable entries in the payload.
	ErrCountMismatch = errors.New("count mismatch")

	// ErrParse indicates malformed JSON or CSV.
	ErrParse = errors.New("parse error")

	// ErrIntermediateMissing indicates no intermediate text file exists for a document.
	ErrIntermediateMissing = errors.New("intermediate file missing")
)

// CountMismatchError reports how many lines were supplied against
// how many replaceable entries the payload holds.
type CountMismatchError struct {
	Lines   int
	Entries int
}

// Error implements error.
func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("number of lines (%d) does not match original translatable texts (%d)",
		e.Lines, e.Entries)
}

// Is reports whether target is ErrCountMismatch.
func (e *CountMismatchError) Is(target error) bool {
	return target == ErrCountMismatch
}

// CheckCount returns a *CountMismatchError when lines != entries.
func CheckCount(lines, entries int) error {
	if lines != entries {
		return &CountMismatchError{Lines: lines, Entries: entries}
	}
	return nil
}
