package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

// mockBatch records the calls made by commands.
type mockBatch struct {
	cfg       domain.Config
	calls     []string
	report    *domain.BatchReport
	outcomes  map[string]domain.OutcomeState
	err       error
	logLines  []string
	documents []string
}

func (m *mockBatch) Export(_ context.Context, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	m.calls = append(m.calls, "export:"+method.String())
	return m.finish(sink)
}

func (m *mockBatch) Import(_ context.Context, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	m.calls = append(m.calls, "import:"+method.String())
	return m.finish(sink)
}

func (m *mockBatch) ImportDocument(
	_ context.Context, method domain.Method, name string, sink driving.LogSink,
) (*domain.DocumentOutcome, error) {
	m.calls = append(m.calls, "import:"+method.String())
	m.documents = append(m.documents, name)
	if m.err != nil {
		return nil, m.err
	}
	state := domain.OutcomeImported
	if s, ok := m.outcomes[name]; ok {
		state = s
	}
	sink.Log("merged " + name)
	return &domain.DocumentOutcome{Name: name, State: state}, nil
}

func (m *mockBatch) finish(sink driving.LogSink) (*domain.BatchReport, error) {
	for _, l := range m.logLines {
		sink.Log(l)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.BatchReport{}, nil
	}
	return m.report, nil
}

// mockConfig is an in-memory driving.ConfigService.
type mockConfig struct {
	cfg    domain.Config
	set    map[string]string
	reset  []string
	setErr error
	path   string
}

func newMockConfig() *mockConfig {
	return &mockConfig{cfg: domain.DefaultConfig(), set: map[string]string{}}
}

func (m *mockConfig) Get() (domain.Config, error) { return m.cfg, nil }

func (m *mockConfig) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	return nil
}

func (m *mockConfig) Reset(key string) error {
	m.reset = append(m.reset, key)
	return nil
}

func (m *mockConfig) Keys() []string { return []string{"method", "placeholder"} }

func (m *mockConfig) Path() string { return m.path }

// mockHistory serves fixed runs.
type mockHistory struct {
	runs  []domain.BatchReport
	limit int
}

func (m *mockHistory) Recent(_ context.Context, limit int) ([]domain.BatchReport, error) {
	m.limit = limit
	return m.runs, nil
}

func (m *mockHistory) Get(_ context.Context, runID string) (*domain.BatchReport, error) {
	for i := range m.runs {
		if m.runs[i].RunID == runID {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// testServices installs services built around batch and returns them.
func testServices(t *testing.T, batch *mockBatch) *Services {
	t.Helper()
	s := &Services{
		Config:  newMockConfig(),
		History: &mockHistory{},
		NewBatch: func(cfg domain.Config) driving.BatchService {
			batch.cfg = cfg
			return batch
		},
	}
	SetServices(s)
	t.Cleanup(resetGlobals)
	return s
}

// resetGlobals restores package state shared by rootCmd between runs.
func resetGlobals() {
	services = nil
	wiring = nil
	options = Options{}
	verbose = false
	sourceDir, intermediateDir, outputDir, placeholder, methodName = "", "", "", "", ""
	strict, timestamps = false, false
	historyLimit = 0
}

// execute runs rootCmd with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
