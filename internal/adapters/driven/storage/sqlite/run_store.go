package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
)

// timeLayout is fixed width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save stores a report, replacing any earlier copy with the same run ID.
func (s *runStore) Save(ctx context.Context, report *domain.BatchReport) error {
	if report == nil || report.RunID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, report.RunID); err != nil {
		return fmt.Errorf("replacing run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, direction, method, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, report.RunID,
		string(report.Direction),
		string(report.Method),
		formatTime(report.StartedAt),
		formatNullableTime(report.FinishedAt))
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i, o := range report.Outcomes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_outcomes (run_id, position, document, state, lines, reason)
			VALUES (?, ?, ?, ?, ?, ?)
		`, report.RunID, i, o.Name, string(o.State), o.Lines, nullString(o.Reason))
		if err != nil {
			return fmt.Errorf("inserting outcome %s: %w", o.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// Get retrieves a report and its outcomes.
func (s *runStore) Get(ctx context.Context, runID string) (*domain.BatchReport, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, direction, method, started_at, finished_at
		FROM runs WHERE id = ?
	`, runID)

	report, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadOutcomes(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns reports ordered by start time descending (most recent first).
func (s *runStore) List(ctx context.Context, limit int) ([]domain.BatchReport, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, direction, method, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}

	var reports []domain.BatchReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		report, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	rows.Close()

	for i := range reports {
		if err := s.loadOutcomes(ctx, &reports[i]); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// Prune keeps the most recent 'keep' runs. Outcomes cascade.
func (s *runStore) Prune(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY started_at DESC, rowid DESC) as rn
				FROM runs
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

func (s *runStore) loadOutcomes(ctx context.Context, report *domain.BatchReport) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT document, state, lines, reason
		FROM run_outcomes
		WHERE run_id = ?
		ORDER BY position
	`, report.RunID)
	if err != nil {
		return fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o domain.DocumentOutcome
		var state string
		var reason sql.NullString
		if err := rows.Scan(&o.Name, &state, &o.Lines, &reason); err != nil {
			return fmt.Errorf("scanning outcome: %w", err)
		}
		o.State = domain.OutcomeState(state)
		o.Reason = reason.String
		report.Add(o)
	}
	return rows.Err()
}

// ==================== Helper Functions ====================

type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans a run row from *sql.Row or *sql.Rows.
func scanRun(row scanner) (*domain.BatchReport, error) {
	var report domain.BatchReport
	var direction, method, startedAt string
	var finishedAt sql.NullString

	if err := row.Scan(&report.RunID, &direction, &method, &startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	report.Direction = domain.Direction(direction)
	report.Method = domain.Method(method)
	if t, err := time.Parse(timeLayout, startedAt); err == nil {
		report.StartedAt = t
	}
	report.FinishedAt = parseNullableTime(finishedAt)
	return &report, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatNullableTime formats a time, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

// parseNullableTime returns zero time for NULL or unparsable values.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
