package driven

import (
	"context"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// Workspace gives the pipeline access to the three working directories.
type Workspace interface {
	// Documents lists source document names (*.json) in name order.
	// Returns domain.ErrDirectoryMissing when the source directory is absent.
	Documents(ctx context.Context) ([]string, error)

	// Load parses a source document.
	Load(ctx context.Context, name string) (*domain.Document, error)

	// RequireIntermediate returns domain.ErrDirectoryMissing when the
	// intermediate directory is absent.
	RequireIntermediate() error

	// IntermediateName returns the intermediate file name for a document.
	IntermediateName(name string) string

	// ReadIntermediate returns the intermediate file contents for a document.
	// Returns domain.ErrIntermediateMissing when the file does not exist.
	ReadIntermediate(ctx context.Context, name string) ([]byte, error)

	// WriteIntermediate replaces the intermediate file for a document.
	WriteIntermediate(ctx context.Context, name string, data []byte) error

	// Save writes a rewritten document to the output directory.
	// The file only appears once it is completely written.
	Save(ctx context.Context, doc *domain.Document) error
}
