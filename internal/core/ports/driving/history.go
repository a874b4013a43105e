package driving

import (
	"context"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// HistoryService exposes past batch runs.
type HistoryService interface {
	// Recent returns up to limit runs, newest first.
	// A limit of zero or less uses the configured history limit.
	Recent(ctx context.Context, limit int) ([]domain.BatchReport, error)

	// Get returns one run with its per-document outcomes.
	// Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, runID string) (*domain.BatchReport, error)
}
