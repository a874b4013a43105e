package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
	"github.com/custodia-labs/textsasset/internal/jsondoc"
	"github.com/custodia-labs/textsasset/internal/linecodec"
	"github.com/custodia-labs/textsasset/internal/logger"
)

// Ensure BatchPipeline implements the interface.
var _ driving.BatchService = (*BatchPipeline)(nil)

// BatchPipeline exports payload entries to intermediate text files and
// merges edited text files back into new documents.
//
// Documents are processed one at a time. A document-scoped failure turns
// into a skipped outcome and the batch moves on; only a missing working
// directory or an unknown method aborts the run.
type BatchPipeline struct {
	cfg       domain.Config
	workspace driven.Workspace
	codecs    driven.CodecRegistry
	lines     *linecodec.Codec
	runs      driven.RunStore

	now   func() time.Time
	newID func() string
}

// NewBatchPipeline creates a pipeline.
// runs is optional - if nil, reports are not persisted.
func NewBatchPipeline(
	cfg domain.Config,
	workspace driven.Workspace,
	codecs driven.CodecRegistry,
	runs driven.RunStore,
) *BatchPipeline {
	return &BatchPipeline{
		cfg:       cfg,
		workspace: workspace,
		codecs:    codecs,
		lines:     linecodec.New(cfg.Placeholder),
		runs:      runs,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Export extracts every source document into an intermediate text file.
func (p *BatchPipeline) Export(ctx context.Context, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	sink = orDiscard(sink)
	codec, err := p.codec(method, sink)
	if err != nil {
		return nil, err
	}

	sink.Log("--- Starting Export Process ---")
	sink.Log(fmt.Sprintf("Selected method: %s (%s)", codec.Method(), codec.Method().Description()))
	logger.Section("Export")

	names, err := p.workspace.Documents(ctx)
	if err != nil {
		sink.Log(fmt.Sprintf("Error: %v", err))
		return nil, err
	}

	report := p.newReport(domain.DirectionExport, codec.Method())
	if len(names) == 0 {
		sink.Log(fmt.Sprintf("No JSON files found in the directory '%s'.", p.cfg.SourceDir))
	}

	for i, name := range names {
		prefix := progress(i, len(names))
		outcome := p.guard(name, func() domain.DocumentOutcome {
			return p.exportDocument(ctx, codec, name)
		})
		p.logOutcome(sink, prefix, outcome)
		report.Add(outcome)
	}

	p.finish(ctx, report, sink)
	sink.Log("")
	sink.Log("--- Export process completed ---")
	p.logSummary(sink, report, "Files successfully extracted")
	return report, nil
}

// Import merges every intermediate text file back into a new document.
func (p *BatchPipeline) Import(ctx context.Context, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	sink = orDiscard(sink)
	codec, err := p.codec(method, sink)
	if err != nil {
		return nil, err
	}

	sink.Log("--- Starting Import Process ---")
	sink.Log(fmt.Sprintf("Selected method: %s (%s)", codec.Method(), codec.Method().Description()))
	logger.Section("Import")

	names, err := p.importable(ctx, sink)
	if err != nil {
		return nil, err
	}

	report := p.newReport(domain.DirectionImport, codec.Method())
	if len(names) == 0 {
		sink.Log(fmt.Sprintf("No JSON files found in the source directory '%s'.", p.cfg.SourceDir))
	}

	for i, name := range names {
		prefix := progress(i, len(names))
		outcome := p.guard(name, func() domain.DocumentOutcome {
			return p.importDocument(ctx, codec, name)
		})
		p.logOutcome(sink, prefix, outcome)
		report.Add(outcome)
	}

	p.finish(ctx, report, sink)
	sink.Log("")
	sink.Log("--- Import process completed ---")
	p.logSummary(sink, report, "Files successfully merged")
	return report, nil
}

// ImportDocument merges a single document. The outcome is not persisted
// to the run history.
func (p *BatchPipeline) ImportDocument(
	ctx context.Context,
	method domain.Method,
	name string,
	sink driving.LogSink,
) (*domain.DocumentOutcome, error) {
	sink = orDiscard(sink)
	codec, err := p.codec(method, sink)
	if err != nil {
		return nil, err
	}
	if err := p.workspace.RequireIntermediate(); err != nil {
		sink.Log(fmt.Sprintf("Error: %v", err))
		return nil, err
	}

	outcome := p.guard(name, func() domain.DocumentOutcome {
		return p.importDocument(ctx, codec, name)
	})
	p.logOutcome(sink, "", outcome)
	return &outcome, nil
}

func (p *BatchPipeline) codec(method domain.Method, sink driving.LogSink) (driven.Codec, error) {
	if method == "" {
		method = p.cfg.Method
	}
	codec, err := p.codecs.Get(method)
	if err != nil {
		sink.Log(fmt.Sprintf("Error: %v", err))
		return nil, err
	}
	return codec, nil
}

// importable lists documents after checking both input directories.
func (p *BatchPipeline) importable(ctx context.Context, sink driving.LogSink) ([]string, error) {
	names, err := p.workspace.Documents(ctx)
	if err == nil {
		err = p.workspace.RequireIntermediate()
	}
	if err != nil {
		sink.Log(fmt.Sprintf("Error: The directories '%s' and '%s' must exist: %v",
			p.cfg.IntermediateDir, p.cfg.SourceDir, err))
		return nil, err
	}
	return names, nil
}

func (p *BatchPipeline) exportDocument(ctx context.Context, codec driven.Codec, name string) domain.DocumentOutcome {
	doc, err := p.workspace.Load(ctx, name)
	if err != nil {
		return failure(name, err)
	}
	payload, err := doc.Payload(p.cfg.PayloadField)
	if err != nil {
		return failure(name, err)
	}
	entries, err := codec.Extract(payload)
	if err != nil {
		return failure(name, err)
	}

	values := domain.Values(entries)
	if err := p.workspace.WriteIntermediate(ctx, name, p.lines.Marshal(values)); err != nil {
		return failure(name, err)
	}
	logger.Debug("exported %s: %d entries, %d comments", name, len(values), len(entries)-len(values))

	return domain.DocumentOutcome{
		Name:   name,
		State:  domain.OutcomeExported,
		Lines:  len(values),
		Reason: fmt.Sprintf("Extracted texts from %s to %s (%d lines)", name, p.workspace.IntermediateName(name), len(values)),
	}
}

// importDocument writes output only after the full rewrite succeeded.
func (p *BatchPipeline) importDocument(ctx context.Context, codec driven.Codec, name string) domain.DocumentOutcome {
	data, err := p.workspace.ReadIntermediate(ctx, name)
	if err != nil {
		return failure(name, err)
	}
	values, err := p.lines.Unmarshal(data)
	if err != nil {
		return failure(name, fmt.Errorf("%w: %s: %v", domain.ErrParse, p.workspace.IntermediateName(name), err))
	}

	doc, err := p.workspace.Load(ctx, name)
	if err != nil {
		return failure(name, err)
	}
	payload, err := doc.Payload(p.cfg.PayloadField)
	if err != nil {
		return failure(name, err)
	}
	rewritten, err := codec.Rewrite(payload, values)
	if err != nil {
		return failure(name, err)
	}
	encoded, err := jsondoc.EncodeString(rewritten)
	if err != nil {
		return failure(name, err)
	}
	if err := p.workspace.Save(ctx, doc.WithPayload(p.cfg.PayloadField, encoded)); err != nil {
		return failure(name, err)
	}

	return domain.DocumentOutcome{
		Name:   name,
		State:  domain.OutcomeImported,
		Lines:  len(values),
		Reason: fmt.Sprintf("Successfully merged texts from %s into %s.", p.workspace.IntermediateName(name), name),
	}
}

// guard converts a panic inside a codec or adapter into a failed outcome.
func (p *BatchPipeline) guard(name string, fn func() domain.DocumentOutcome) (outcome domain.DocumentOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("recovered while processing %s: %v", name, r)
			outcome = domain.DocumentOutcome{
				Name:   name,
				State:  domain.OutcomeFailed,
				Reason: fmt.Sprintf("An unexpected error occurred while processing %s: %v", name, r),
			}
		}
	}()
	return fn()
}

func (p *BatchPipeline) newReport(direction domain.Direction, method domain.Method) *domain.BatchReport {
	return &domain.BatchReport{
		RunID:     p.newID(),
		Direction: direction,
		Method:    method,
		StartedAt: p.now(),
	}
}

// finish stamps the report and persists it. History failures are logged only.
func (p *BatchPipeline) finish(ctx context.Context, report *domain.BatchReport, sink driving.LogSink) {
	report.FinishedAt = p.now()
	if p.runs == nil {
		return
	}
	if err := p.runs.Save(ctx, report); err != nil {
		sink.Log(fmt.Sprintf("Warning: could not record run history: %v", err))
		return
	}
	if p.cfg.HistoryLimit > 0 {
		if err := p.runs.Prune(ctx, p.cfg.HistoryLimit); err != nil {
			logger.Warn("pruning run history: %v", err)
		}
	}
}

func (p *BatchPipeline) logOutcome(sink driving.LogSink, prefix string, o domain.DocumentOutcome) {
	line := o.Reason
	if prefix != "" {
		line = prefix + " " + line
	}
	sink.Log(line)
}

func (p *BatchPipeline) logSummary(sink driving.LogSink, r *domain.BatchReport, processedLabel string) {
	sink.Log(fmt.Sprintf("Total original files: %d", r.Total()))
	sink.Log(fmt.Sprintf("%s: %d", processedLabel, r.Processed()))
	sink.Log(fmt.Sprintf("Files skipped: %d", r.Skipped()))
	sink.Log("---------------------------------")
}

// failure classifies err: known document errors skip, anything else fails.
func failure(name string, err error) domain.DocumentOutcome {
	state := domain.OutcomeFailed
	if skippable(err) {
		state = domain.OutcomeSkipped
	}
	verb := "Skipping"
	if state == domain.OutcomeFailed {
		verb = "Failed"
	}
	return domain.DocumentOutcome{
		Name:   name,
		State:  state,
		Reason: fmt.Sprintf("%s %s: %v", verb, name, err),
	}
}

func skippable(err error) bool {
	for _, target := range []error{
		domain.ErrPayloadMissing,
		domain.ErrPayloadFormat,
		domain.ErrParse,
		domain.ErrCountMismatch,
		domain.ErrIntermediateMissing,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func progress(i, total int) string {
	return fmt.Sprintf("[%d/%d]", i+1, total)
}

func orDiscard(sink driving.LogSink) driving.LogSink {
	if sink == nil {
		return driving.DiscardSink
	}
	return sink
}
