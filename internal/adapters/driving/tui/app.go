package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/textsasset/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/textsasset/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/textsasset/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/textsasset/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
	"github.com/custodia-labs/textsasset/internal/guide"
)

// chrome is the number of rows used by the title, the tabs and the status bar.
const chrome = 3

// historyLimit is how many runs the history key lists.
const historyLimit = 10

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	cancel context.CancelFunc

	styles  *styles.Styles
	keymap  *keymap.KeyMap
	status  *status.Bar
	help    help.Model
	spinner spinner.Model
	log     viewport.Model

	methods   []domain.Method
	methodIdx int

	// lines holds the rendered log, one entry per pipeline line.
	lines []string

	// run is the batch in flight; nil while idle.
	run *batchRun

	showHelp bool
	err      error

	width  int
	height int
	ready  bool
}

// batchRun connects a background batch to the update loop.
// report and err are written before lines is closed.
type batchRun struct {
	direction domain.Direction
	lines     chan string
	report    *domain.BatchReport
	err       error
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Subtitle

	a := &App{
		ports:   ports,
		styles:  s,
		keymap:  km,
		status:  status.NewBar(s, km),
		help:    help.New(),
		spinner: sp,
		log:     viewport.New(80, 20),
		methods: domain.AllMethods(),
	}
	a.WithContext(context.Background())

	for i, m := range a.methods {
		if m == ports.Config.Method {
			a.methodIdx = i
		}
	}
	a.appendLines(guide.Lines(ports.Config)...)

	return a, nil
}

// WithContext sets the parent context for batches started by the app.
func (a *App) WithContext(ctx context.Context) *App {
	if a.cancel != nil {
		a.cancel()
	}
	a.ctx, a.cancel = context.WithCancel(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("textsasset - Extract/Merge")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case messages.LogLine:
		a.appendLines(msg.Line)
		if a.run == nil {
			return a, nil
		}
		return a, waitForLine(a.run)

	case messages.BatchFinished:
		a.finish(msg)
		return a, nil

	case messages.HistoryLoaded:
		a.showHistory(msg)
		return a, nil

	case spinner.TickMsg:
		if !a.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		a.cancel()
		return tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		a.showHelp = !a.showHelp
		return nil
	case keymap.Matches(k, a.keymap.Up), keymap.Matches(k, a.keymap.Down):
		var cmd tea.Cmd
		a.log, cmd = a.log.Update(msg)
		return cmd
	}

	// The method selector and batch keys stay inert while a batch runs.
	if a.Busy() {
		return nil
	}

	switch {
	case keymap.Matches(k, a.keymap.Export):
		return a.startBatch(domain.DirectionExport)
	case keymap.Matches(k, a.keymap.Import):
		return a.startBatch(domain.DirectionImport)
	case keymap.Matches(k, a.keymap.NextMethod):
		a.methodIdx = (a.methodIdx + 1) % len(a.methods)
	case keymap.Matches(k, a.keymap.PrevMethod):
		a.methodIdx = (a.methodIdx + len(a.methods) - 1) % len(a.methods)
	case keymap.Matches(k, a.keymap.History):
		return a.loadHistory()
	case keymap.Matches(k, a.keymap.Guide):
		a.appendLines("")
		a.appendLines(guide.Lines(a.ports.Config)...)
	}
	return nil
}

// startBatch runs a batch in the background and streams its log lines
// back into the update loop.
func (a *App) startBatch(direction domain.Direction) tea.Cmd {
	run := &batchRun{
		direction: direction,
		lines:     make(chan string, 64),
	}
	a.run = run
	a.err = nil

	method := a.Method()
	ctx := a.ctx
	a.status.SetState(status.StateRunning)
	a.status.SetMessage(fmt.Sprintf("Running %s (%s)", direction, method))
	a.appendLines("")

	go func() {
		defer close(run.lines)
		sink := driving.LogFunc(func(line string) {
			select {
			case run.lines <- line:
			case <-ctx.Done():
			}
		})

		if direction == domain.DirectionExport {
			run.report, run.err = a.ports.Batch.Export(ctx, method, sink)
		} else {
			run.report, run.err = a.ports.Batch.Import(ctx, method, sink)
		}
	}()

	return tea.Batch(a.spinner.Tick, waitForLine(run))
}

// waitForLine blocks until the batch logs a line or finishes.
func waitForLine(run *batchRun) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-run.lines
		if !ok {
			return messages.BatchFinished{
				Direction: run.direction,
				Report:    run.report,
				Err:       run.err,
			}
		}
		return messages.LogLine{Line: line}
	}
}

func (a *App) finish(msg messages.BatchFinished) {
	a.run = nil

	if msg.Err != nil {
		a.err = msg.Err
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
		return
	}

	a.status.SetState(status.StateDone)
	a.status.SetMessage("")
	if msg.Report != nil {
		a.status.SetCounts(msg.Report.Processed(), msg.Report.Skipped())
	}
}

func (a *App) loadHistory() tea.Cmd {
	if a.ports.History == nil {
		a.appendLines("", "Run history is not available.")
		return nil
	}

	history := a.ports.History
	ctx := a.ctx
	return func() tea.Msg {
		runs, err := history.Recent(ctx, historyLimit)
		return messages.HistoryLoaded{Runs: runs, Err: err}
	}
}

func (a *App) showHistory(msg messages.HistoryLoaded) {
	a.appendLines("", "=== Recent runs ===")
	if msg.Err != nil {
		a.appendLines(fmt.Sprintf("Error: could not load run history: %v", msg.Err))
		return
	}
	if len(msg.Runs) == 0 {
		a.appendLines("No runs recorded yet.")
		return
	}
	for _, r := range msg.Runs {
		a.appendLines(fmt.Sprintf("%s  %-6s  %-11s  %d/%d processed  %s",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Direction, r.Method, r.Processed(), r.Total(), shortID(r.RunID)))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (a *App) appendLines(lines ...string) {
	a.lines = append(a.lines, lines...)

	rendered := make([]string, len(a.lines))
	for i, l := range a.lines {
		rendered[i] = a.styles.LogLine(l)
	}
	a.log.SetContent(strings.Join(rendered, "\n"))
	a.log.GotoBottom()
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	title := a.styles.Title.Render("TextsAsset Extract/Merge")
	if a.Busy() {
		title += " " + a.spinner.View()
	}

	body := a.log.View()
	if a.showHelp {
		body = a.help.FullHelpView(a.keymap.FullHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		a.viewTabs(),
		body,
		a.status.View(),
	)
}

func (a *App) viewTabs() string {
	tabs := make([]string, len(a.methods))
	for i, m := range a.methods {
		style := a.styles.Tab
		if i == a.methodIdx {
			style = a.styles.ActiveTab
		}
		if a.Busy() && i != a.methodIdx {
			style = a.styles.Tab.Faint(true)
		}
		tabs[i] = style.Render(m.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.cancel()
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Method returns the selected method.
func (a *App) Method() domain.Method {
	return a.methods[a.methodIdx]
}

// Busy reports whether a batch is running.
func (a *App) Busy() bool {
	return a.run != nil
}

// Lines returns the raw log lines shown so far.
func (a *App) Lines() []string {
	return a.lines
}

// Err returns the error of the last batch, if any.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.status.SetWidth(width)
	a.help.Width = width
	a.log.Width = width
	a.log.Height = max(height-chrome, 1)
	a.log.GotoBottom()
}
