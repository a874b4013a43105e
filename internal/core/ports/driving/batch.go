package driving

import (
	"context"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// LogSink receives human-readable progress and diagnostic lines.
// The pipeline is the only writer; sinks never see a line twice.
type LogSink interface {
	Log(line string)
}

// LogFunc adapts a plain function to LogSink.
type LogFunc func(line string)

// Log implements LogSink.
func (f LogFunc) Log(line string) { f(line) }

// DiscardSink drops every line.
var DiscardSink LogSink = LogFunc(func(string) {})

// BatchService runs export and import batches.
// Both calls are synchronous and return once the whole batch completed.
type BatchService interface {
	// Export extracts every source document into an intermediate text file.
	Export(ctx context.Context, method domain.Method, sink LogSink) (*domain.BatchReport, error)

	// Import merges every intermediate text file back into a new document.
	Import(ctx context.Context, method domain.Method, sink LogSink) (*domain.BatchReport, error)

	// ImportDocument merges a single document.
	ImportDocument(ctx context.Context, method domain.Method, name string, sink LogSink) (*domain.DocumentOutcome, error)
}
