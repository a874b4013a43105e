package driven

import (
	"context"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// RunStore persists batch reports.
type RunStore interface {
	// Save stores a report and its outcomes.
	Save(ctx context.Context, report *domain.BatchReport) error

	// Get retrieves a report by run ID.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, runID string) (*domain.BatchReport, error)

	// List returns the most recent reports first.
	List(ctx context.Context, limit int) ([]domain.BatchReport, error)

	// Prune keeps only the most recent keep reports.
	Prune(ctx context.Context, keep int) error
}
