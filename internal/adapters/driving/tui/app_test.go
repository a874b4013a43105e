package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textsasset/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

type mockBatch struct {
	lines   []string
	report  *domain.BatchReport
	err     error
	methods []domain.Method
	dirs    []domain.Direction
}

func (m *mockBatch) run(dir domain.Direction, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	m.methods = append(m.methods, method)
	m.dirs = append(m.dirs, dir)
	for _, l := range m.lines {
		sink.Log(l)
	}
	return m.report, m.err
}

func (m *mockBatch) Export(_ context.Context, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	return m.run(domain.DirectionExport, method, sink)
}

func (m *mockBatch) Import(_ context.Context, method domain.Method, sink driving.LogSink) (*domain.BatchReport, error) {
	return m.run(domain.DirectionImport, method, sink)
}

func (m *mockBatch) ImportDocument(
	_ context.Context, _ domain.Method, _ string, _ driving.LogSink,
) (*domain.DocumentOutcome, error) {
	return nil, errors.New("not used")
}

type mockHistory struct {
	runs []domain.BatchReport
	err  error
}

func (m *mockHistory) Recent(context.Context, int) ([]domain.BatchReport, error) {
	return m.runs, m.err
}

func (m *mockHistory) Get(context.Context, string) (*domain.BatchReport, error) {
	return nil, domain.ErrNotFound
}

func newTestApp(t *testing.T, batch *mockBatch, history driving.HistoryService) *App {
	t.Helper()
	app, err := NewApp(&Ports{Batch: batch, History: history, Config: domain.DefaultConfig()})
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command it produces, feeding messages back
// into the app. Spinner ticks are dropped so nothing sleeps.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			_, follow := app.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func TestNewApp_RequiresBatch(t *testing.T) {
	_, err := NewApp(&Ports{})
	require.ErrorIs(t, err, ErrMissingBatchService)

	_, err = NewApp(nil)
	require.ErrorIs(t, err, ErrMissingBatchService)
}

func TestNewApp_ShowsGuideAndConfiguredMethod(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Method = domain.MethodCSVString

	app, err := NewApp(&Ports{Batch: &mockBatch{}, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, domain.MethodCSVString, app.Method())
	assert.Equal(t, "--- How to Use ---", app.Lines()[0])
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_MethodSelection(t *testing.T) {
	app := newTestApp(t, &mockBatch{}, nil)
	methods := domain.AllMethods()
	require.Equal(t, methods[0], app.Method())

	app.Update(keyPress("tab"))
	assert.Equal(t, methods[1], app.Method())

	app.Update(keyPress("left"))
	app.Update(keyPress("left"))
	assert.Equal(t, methods[len(methods)-1], app.Method())
}

func TestApp_ExportStreamsLogAndReportsCounts(t *testing.T) {
	batch := &mockBatch{
		lines: []string{"--- Starting Export Process ---", "[1/1] Extracted texts from a.json to a.txt (2 lines)"},
		report: &domain.BatchReport{
			Direction: domain.DirectionExport,
			Outcomes:  []domain.DocumentOutcome{{Name: "a.json", State: domain.OutcomeExported}},
		},
	}
	app := newTestApp(t, batch, nil)
	app.Update(keyPress("tab"))

	_, cmd := app.Update(keyPress("e"))
	require.True(t, app.Busy())
	drain(t, app, cmd)

	assert.False(t, app.Busy())
	assert.NoError(t, app.Err())
	assert.Equal(t, []domain.Method{domain.AllMethods()[1]}, batch.methods)
	assert.Equal(t, []domain.Direction{domain.DirectionExport}, batch.dirs)

	lines := app.Lines()
	assert.Equal(t, batch.lines, lines[len(lines)-2:])
	assert.Contains(t, app.View(), "1 processed, 0 skipped")
}

func TestApp_ImportError(t *testing.T) {
	batch := &mockBatch{err: domain.ErrDirectoryMissing}
	app := newTestApp(t, batch, nil)

	_, cmd := app.Update(keyPress("i"))
	drain(t, app, cmd)

	assert.ErrorIs(t, app.Err(), domain.ErrDirectoryMissing)
	assert.Equal(t, []domain.Direction{domain.DirectionImport}, batch.dirs)
	assert.Contains(t, app.View(), "Error:")
}

func TestApp_KeysInertWhileBusy(t *testing.T) {
	batch := &mockBatch{report: &domain.BatchReport{}}
	app := newTestApp(t, batch, nil)

	_, cmd := app.Update(keyPress("e"))
	require.True(t, app.Busy())
	method := app.Method()

	_, again := app.Update(keyPress("i"))
	app.Update(keyPress("tab"))
	assert.Nil(t, again)
	assert.Equal(t, method, app.Method())

	drain(t, app, cmd)
	assert.Len(t, batch.dirs, 1)
}

func TestApp_History(t *testing.T) {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	history := &mockHistory{runs: []domain.BatchReport{{
		RunID:     "0123456789abcdef",
		Direction: domain.DirectionImport,
		Method:    domain.MethodJSONTable,
		StartedAt: started,
		Outcomes:  []domain.DocumentOutcome{{State: domain.OutcomeImported}, {State: domain.OutcomeSkipped}},
	}}}
	app := newTestApp(t, &mockBatch{}, history)

	_, cmd := app.Update(keyPress("r"))
	drain(t, app, cmd)

	last := app.Lines()[len(app.Lines())-1]
	assert.Contains(t, last, "1/2 processed")
	assert.Contains(t, last, "01234567")
	assert.Contains(t, last, "json_table")
}

func TestApp_HistoryUnavailable(t *testing.T) {
	app := newTestApp(t, &mockBatch{}, nil)

	_, cmd := app.Update(keyPress("r"))

	assert.Nil(t, cmd)
	assert.Equal(t, "Run history is not available.", app.Lines()[len(app.Lines())-1])
}

func TestApp_HistoryError(t *testing.T) {
	app := newTestApp(t, &mockBatch{}, &mockHistory{err: errors.New("locked")})

	_, cmd := app.Update(keyPress("r"))
	drain(t, app, cmd)

	assert.Contains(t, app.Lines()[len(app.Lines())-1], "locked")
}

func TestApp_HelpToggle(t *testing.T) {
	app := newTestApp(t, &mockBatch{}, nil)

	app.Update(keyPress("?"))
	assert.Contains(t, app.View(), "recent runs")

	app.Update(keyPress("?"))
	assert.NotContains(t, app.View(), "recent runs")
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, &mockBatch{}, nil)

	_, cmd := app.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, app.ctx.Err())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Batch: &mockBatch{}, Config: domain.DefaultConfig()})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, app.Ready())
	assert.Equal(t, 27, app.log.Height)
}

func TestApp_LogLineAfterFinishIgnored(t *testing.T) {
	app := newTestApp(t, &mockBatch{}, nil)

	_, cmd := app.Update(messages.LogLine{Line: "stray"})

	assert.Nil(t, cmd)
	assert.Equal(t, "stray", app.Lines()[len(app.Lines())-1])
}
