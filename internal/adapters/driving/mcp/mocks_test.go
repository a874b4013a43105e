package mcp

import (
	"context"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

// mockBatchService is a mock implementation of driving.BatchService.
type mockBatchService struct {
	report  *domain.BatchReport
	outcome *domain.DocumentOutcome
	err     error

	lastMethod   domain.Method
	lastDocument string
}

func (m *mockBatchService) Export(
	_ context.Context, method domain.Method, sink driving.LogSink,
) (*domain.BatchReport, error) {
	m.lastMethod = method
	sink.Log("exporting")
	return m.report, m.err
}

func (m *mockBatchService) Import(
	_ context.Context, method domain.Method, sink driving.LogSink,
) (*domain.BatchReport, error) {
	m.lastMethod = method
	sink.Log("importing")
	return m.report, m.err
}

func (m *mockBatchService) ImportDocument(
	_ context.Context, method domain.Method, name string, sink driving.LogSink,
) (*domain.DocumentOutcome, error) {
	m.lastMethod = method
	m.lastDocument = name
	sink.Log("importing " + name)
	return m.outcome, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	reports []domain.BatchReport
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.BatchReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.reports) > limit {
		return m.reports[:limit], nil
	}
	return m.reports, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.BatchReport, error) {
	for i := range m.reports {
		if m.reports[i].RunID == id {
			return &m.reports[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// mockConfigService is a mock implementation of driving.ConfigService.
type mockConfigService struct {
	cfg domain.Config
	err error
}

func (m *mockConfigService) Get() (domain.Config, error) { return m.cfg, m.err }
func (m *mockConfigService) Set(_, _ string) error       { return nil }
func (m *mockConfigService) Reset(_ string) error        { return nil }
func (m *mockConfigService) Keys() []string              { return nil }
func (m *mockConfigService) Path() string                { return "" }

func sampleReport() *domain.BatchReport {
	return &domain.BatchReport{
		RunID:     "run-1",
		Direction: domain.DirectionExport,
		Method:    domain.MethodXMLEntry,
		Outcomes: []domain.DocumentOutcome{
			{Name: "a.json", State: domain.OutcomeExported, Lines: 3, Reason: "ok"},
			{Name: "b.json", State: domain.OutcomeSkipped, Reason: "Skipping b.json: no payload"},
		},
	}
}
