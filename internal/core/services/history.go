package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded batch runs.
type HistoryService struct {
	runs  driven.RunStore
	limit int
}

// NewHistoryService creates a history service.
// limit caps Recent when the caller passes zero.
func NewHistoryService(runs driven.RunStore, limit int) *HistoryService {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &HistoryService{runs: runs, limit: limit}
}

// Recent returns up to limit runs, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.BatchReport, error) {
	if s.runs == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.limit
	}
	reports, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return reports, nil
}

// Get returns one run.
func (s *HistoryService) Get(ctx context.Context, runID string) (*domain.BatchReport, error) {
	if s.runs == nil {
		return nil, domain.ErrNotFound
	}
	return s.runs.Get(ctx, runID)
}
