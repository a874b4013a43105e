package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.BatchReport
	seq  map[string]int
	next int
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.BatchReport),
		seq:  make(map[string]int),
	}
}

// Save stores or replaces a report.
func (s *RunStore) Save(_ context.Context, report *domain.BatchReport) error {
	if report == nil || report.RunID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *report
	stored.Outcomes = append([]domain.DocumentOutcome(nil), report.Outcomes...)
	s.runs[report.RunID] = stored
	if _, ok := s.seq[report.RunID]; !ok {
		s.next++
		s.seq[report.RunID] = s.next
	}
	return nil
}

// Get retrieves a report by run ID.
func (s *RunStore) Get(_ context.Context, runID string) (*domain.BatchReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &report, nil
}

// List returns up to limit reports, most recent first.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.BatchReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := s.sorted()
	if limit >= 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// Prune keeps the most recent keep reports.
func (s *RunStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.sorted() {
		if i >= keep {
			delete(s.runs, r.RunID)
			delete(s.seq, r.RunID)
		}
	}
	return nil
}

// sorted returns reports by start time descending, newest insert first on ties
// (caller must hold lock).
func (s *RunStore) sorted() []domain.BatchReport {
	reports := make([]domain.BatchReport, 0, len(s.runs))
	for _, r := range s.runs {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.After(b.StartedAt)
		}
		return s.seq[a.RunID] > s.seq[b.RunID]
	})
	return reports
}
