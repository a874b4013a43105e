// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// LogLine carries one line emitted by a running batch.
type LogLine struct {
	Line string
}

// BatchFinished is sent once a batch returned.
// Report may be nil when Err is set.
type BatchFinished struct {
	Direction domain.Direction
	Report    *domain.BatchReport
	Err       error
}

// HistoryLoaded carries recent runs for display.
type HistoryLoaded struct {
	Runs []domain.BatchReport
	Err  error
}
