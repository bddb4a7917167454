package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Mr-Dark-debug/codementor/internal/analysis"
	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/Mr-Dark-debug/codementor/internal/database"
	"github.com/Mr-Dark-debug/codementor/internal/execution"
)

// ────────────────────────────────────────────────────────────
// Tabs
// ────────────────────────────────────────────────────────────

// Tab is a top-level dashboard view.
type Tab int

const (
	TabEditor Tab = iota
	TabExercises
	TabAnalysis
	TabDebug
)

var tabNames = []string{"Code Editor", "Exercises", "Analysis", "Debug"}

func (t Tab) String() string { return tabNames[t] }

// AnalysisView is a sub-tab of the Analysis tab.
type AnalysisView int

const (
	AnalysisQuality AnalysisView = iota
	AnalysisMetrics
	AnalysisComplexity
	AnalysisInsights
)

var analysisViewNames = []string{"Quality", "Metrics", "Complexity", "Insights"}

// DebugView is a sub-tab of the Debug tab.
type DebugView int

const (
	DebugIssues DebugView = iota
	DebugSuggestions
	DebugHelp
)

const (
	defaultTutorialID = "1"
	defaultLessonID   = "3"
	defaultExerciseID = "1"
	defaultIssueID    = "1"

	sidebarWidth = 34
)

// ────────────────────────────────────────────────────────────
// Options
// ────────────────────────────────────────────────────────────

// Options configures a dashboard model.
type Options struct {
	// InitialCode replaces the welcome snippet when non-nil.
	InitialCode *string
	Language    string
	Delay       time.Duration
	SidebarOpen bool
	Logger      *zap.Logger

	// Step replaces the simulated run's suspension. Tests use it.
	Step execution.StepFunc
}

// editorTabWidth matches the textarea, which stores each tab as four spaces.
const editorTabWidth = 4

// editorText rewrites text the way the textarea stores it, so the buffer
// and the editor hold the same bytes.
func editorText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", editorTabWidth))
}

// codeTracker receives the simulator's change notifications. The
// simulator calls it synchronously, but it lives behind a pointer so every
// copy of the model sees the same value.
type codeTracker struct {
	mu      sync.Mutex
	code    string
	changes int
}

func (c *codeTracker) set(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = code
	c.changes++
}

func (c *codeTracker) get() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code, c.changes
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the Code Mentor dashboard.
// State is organized by concern; rendering is delegated
// to component functions in separate files.
type Model struct {
	store  database.Store
	sim    *execution.Simulator
	logger *zap.Logger
	code   *codeTracker

	// Data
	header    *catalog.HeaderStats
	tutorials []catalog.Tutorial
	exercises []catalog.Exercise
	issues    []catalog.Issue
	report    *analysis.Report
	stats     catalog.ExerciseStats

	// Components
	editor   textarea.Model
	spinner  spinner.Model
	help     viewport.Model
	renderer *glamour.TermRenderer

	// UI state
	activeTab        Tab
	editorFocused    bool
	showSidebar      bool
	selectedTutorial string
	selectedLesson   string
	filter           string
	selectedExercise string
	analysisView     AnalysisView
	debugView        DebugView
	selectedIssue    string
	dismissed        map[string]bool
	width            int
	height           int

	// Runs
	lastRunAt  time.Time
	lastResult *execution.Result

	// Status
	statusMsg string
	err       error
	now       func() time.Time
}

// NewModel creates a new dashboard model backed by the given store.
func NewModel(store database.Store, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tracker := &codeTracker{}
	simOpts := []execution.Option{
		execution.WithLanguage(opts.Language),
		execution.WithLogger(logger),
		execution.OnCodeChange(tracker.set),
		execution.OnRunCode(func(code string) {
			logger.Info("running code",
				zap.Int("bytes", len(code)),
				zap.Int("lines", strings.Count(code, "\n")+1))
		}),
	}
	if opts.InitialCode != nil {
		simOpts = append(simOpts, execution.WithInitialCode(editorText(*opts.InitialCode)))
	}
	if opts.Delay > 0 {
		simOpts = append(simOpts, execution.WithDelay(opts.Delay))
	}
	if opts.Step != nil {
		simOpts = append(simOpts, execution.WithStep(opts.Step))
	}
	sim := execution.New(simOpts...)

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = "│ "
	ta.Placeholder = "Start typing your code here..."
	ta.SetWidth(80)
	ta.SetHeight(14)
	ta.SetValue(sim.Buffer())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		store:            store,
		sim:              sim,
		logger:           logger,
		code:             tracker,
		editor:           ta,
		spinner:          sp,
		help:             viewport.New(80, 12),
		showSidebar:      opts.SidebarOpen,
		selectedTutorial: defaultTutorialID,
		selectedLesson:   defaultLessonID,
		filter:           catalog.FilterAll,
		selectedExercise: defaultExerciseID,
		selectedIssue:    defaultIssueID,
		dismissed:        make(map[string]bool),
		statusMsg:        "Loading catalog...",
		now:              time.Now,
	}
	m.resizeHelp(80, 12)
	return m
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type catalogLoadedMsg struct {
	header    *catalog.HeaderStats
	tutorials []catalog.Tutorial
	exercises []catalog.Exercise
	issues    []catalog.Issue
	report    *analysis.Report
	stats     *catalog.ExerciseStats
}

type runFinishedMsg execution.Result

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), textarea.Blink)
}

func (m Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		header, err := m.store.GetHeaderStats()
		if err != nil {
			return errMsg{fmt.Errorf("loading header: %w", err)}
		}
		tutorials, err := m.store.ListTutorials()
		if err != nil {
			return errMsg{fmt.Errorf("loading tutorials: %w", err)}
		}
		exercises, err := m.store.ListExercises(database.ExerciseFilter{})
		if err != nil {
			return errMsg{fmt.Errorf("loading exercises: %w", err)}
		}
		issues, err := m.store.ListIssues()
		if err != nil {
			return errMsg{fmt.Errorf("loading issues: %w", err)}
		}
		report, err := analysis.NewAnalyzer(m.store).FullAnalysis()
		if err != nil {
			return errMsg{err}
		}
		stats, err := m.store.GetExerciseStats()
		if err != nil {
			return errMsg{fmt.Errorf("loading exercise stats: %w", err)}
		}
		return catalogLoadedMsg{
			header:    header,
			tutorials: tutorials,
			exercises: exercises,
			issues:    issues,
			report:    report,
			stats:     stats,
		}
	}
}

// waitForRun completes an execution off the update loop.
func waitForRun(e *execution.Execution) tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg(e.Wait())
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case catalogLoadedMsg:
		m.header = msg.header
		m.tutorials = msg.tutorials
		m.exercises = msg.exercises
		m.issues = msg.issues
		m.report = msg.report
		if msg.stats != nil {
			m.stats = *msg.stats
		}
		m.statusMsg = fmt.Sprintf("%d tutorials  %d exercises  %d issues",
			len(m.tutorials), len(m.exercises), len(m.issues))
		return m, nil

	case runFinishedMsg:
		res := execution.Result(msg)
		m.lastResult = &res
		m.lastRunAt = m.now()
		stats := m.sim.Metrics()
		verdict := "Run finished"
		if res.Failed {
			verdict = "Run failed"
		}
		m.statusMsg = fmt.Sprintf("%s  %d runs  %d failed", verdict, stats.RunsStarted, stats.RunsFailed)
		m.logger.Debug("run displayed", zap.String("run_id", res.RunID))
		return m, nil

	case spinner.TickMsg:
		if !m.sim.IsRunning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case errMsg:
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		m.logger.Error("dashboard error", zap.Error(msg.err))
		return m, nil
	}

	if m.editorFocused {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	if m.activeTab == TabDebug && m.debugView == DebugHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Global ──

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+b":
		m.showSidebar = !m.showSidebar
		m.layout()
		return m, nil
	}

	// ── Editor focus ──

	if m.editorFocused {
		switch key {
		case "esc":
			m.editor.Blur()
			m.editorFocused = false
			return m, nil
		case "ctrl+r":
			return m.startRun()
		case "ctrl+l":
			return m.resetCode(), nil
		}

		before := m.editor.Value()
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		if after := m.editor.Value(); after != before {
			m.sim.SetBuffer(after)
		}
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4":
		m.activeTab = Tab(key[0] - '1')
		return m, nil
	case "tab":
		m.activeTab = (m.activeTab + 1) % Tab(len(tabNames))
		return m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	case "t":
		m.cycleTutorial()
		return m, nil
	case "n":
		m.moveLesson(1)
		return m, nil
	case "p":
		m.moveLesson(-1)
		return m, nil
	}

	// ── Tab-specific ──

	switch m.activeTab {
	case TabEditor:
		switch key {
		case "enter", "i":
			m.editorFocused = true
			return m, m.editor.Focus()
		case "ctrl+r":
			return m.startRun()
		case "ctrl+l":
			return m.resetCode(), nil
		}

	case TabExercises:
		switch key {
		case "a":
			m.filter = catalog.FilterAll
		case "e":
			m.filter = catalog.DifficultyEasy
		case "m":
			m.filter = catalog.DifficultyMedium
		case "h":
			m.filter = catalog.DifficultyHard
		case "j", "down":
			m.selectedExercise = stepID(exerciseIDs(m.filteredExercises()), m.selectedExercise, 1)
		case "k", "up":
			m.selectedExercise = stepID(exerciseIDs(m.filteredExercises()), m.selectedExercise, -1)
		case "s", "enter":
			return m.startExercise()
		}

	case TabAnalysis:
		switch key {
		case "]", "right", "l":
			m.analysisView = (m.analysisView + 1) % AnalysisView(len(analysisViewNames))
		case "[", "left":
			m.analysisView = (m.analysisView + AnalysisView(len(analysisViewNames)) - 1) % AnalysisView(len(analysisViewNames))
		}

	case TabDebug:
		switch key {
		case "]", "right":
			m.debugView = (m.debugView + 1) % 3
			return m, nil
		case "[", "left":
			m.debugView = (m.debugView + 2) % 3
			return m, nil
		}
		if m.debugView == DebugHelp {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		switch key {
		case "j", "down":
			m.selectedIssue = stepID(issueIDs(m.activeIssues()), m.selectedIssue, 1)
		case "k", "up":
			m.selectedIssue = stepID(issueIDs(m.activeIssues()), m.selectedIssue, -1)
		case "x", "d":
			m.dismissSelected()
		}
	}

	return m, nil
}

// ────────────────────────────────────────────────────────────
// Actions
// ────────────────────────────────────────────────────────────

// startRun begins a simulated run. The running flag is set before the
// command is returned, so a second key press in the same frame is ignored.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	if m.sim.IsRunning() {
		return m, nil
	}
	exec, err := m.sim.Begin()
	if errors.Is(err, execution.ErrRunInProgress) {
		return m, nil
	}
	if err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}
	m.statusMsg = "Running..."
	return m, tea.Batch(m.spinner.Tick, waitForRun(exec))
}

func (m Model) resetCode() Model {
	m.sim.ResetBuffer()
	m.editor.SetValue(m.sim.Buffer())
	m.statusMsg = "Code reset"
	return m
}

// startExercise loads the selected exercise's starter code into the editor.
// Completed exercises cannot be started again.
func (m Model) startExercise() (tea.Model, tea.Cmd) {
	ex, ok := catalog.FindExercise(m.filteredExercises(), m.selectedExercise)
	if !ok || ex.Completed {
		return m, nil
	}
	code := editorText(ex.StarterCode)
	m.sim.SetBuffer(code)
	m.editor.SetValue(code)
	m.activeTab = TabEditor
	m.editorFocused = true
	m.statusMsg = fmt.Sprintf("Started %s", ex.Title)
	return m, m.editor.Focus()
}

func (m *Model) dismissSelected() {
	active := m.activeIssues()
	ids := issueIDs(active)
	idx := indexOf(ids, m.selectedIssue)
	if idx < 0 {
		return
	}
	m.dismissed[m.selectedIssue] = true
	m.statusMsg = fmt.Sprintf("Dismissed %s", truncate(active[idx].Message, 40))
	// The selection is kept on the dismissed id, so the detail pane
	// reverts to its empty state until another issue is picked.
}

func (m *Model) cycleTutorial() {
	ids := make([]string, 0, len(m.tutorials))
	for _, t := range m.tutorials {
		ids = append(ids, t.ID)
	}
	if len(ids) == 0 {
		return
	}
	idx := indexOf(ids, m.selectedTutorial)
	m.selectedTutorial = ids[(idx+1)%len(ids)]
}

func (m *Model) moveLesson(delta int) {
	t, ok := catalog.FindTutorial(m.tutorials, m.selectedTutorial)
	if !ok {
		return
	}
	ids := make([]string, 0, len(t.Lessons))
	for _, l := range t.Lessons {
		ids = append(ids, l.ID)
	}
	m.selectedLesson = stepID(ids, m.selectedLesson, delta)
}

// ────────────────────────────────────────────────────────────
// Derived state
// ────────────────────────────────────────────────────────────

func (m Model) filteredExercises() []catalog.Exercise {
	return catalog.FilterExercises(m.exercises, m.filter)
}

func (m Model) activeIssues() []catalog.Issue {
	return catalog.ActiveIssues(m.issues, m.dismissed)
}

// CurrentCode is the latest text reported through the code-change callback.
func (m Model) CurrentCode() string {
	code, _ := m.code.get()
	return code
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	tabs := renderTabBar(&m)
	footer := renderFooter(&m)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	contentWidth := m.width
	var sidebar string
	if m.sidebarVisible() {
		sidebar = renderSidebar(&m, sidebarWidth, bodyHeight)
		contentWidth -= sidebarWidth
	}

	var body string
	switch m.activeTab {
	case TabEditor:
		body = renderEditorTab(&m, contentWidth, bodyHeight)
	case TabExercises:
		body = renderExercisesTab(&m, contentWidth, bodyHeight)
	case TabAnalysis:
		body = renderAnalysisTab(&m, contentWidth, bodyHeight)
	case TabDebug:
		body = renderDebugTab(&m, contentWidth, bodyHeight)
	}
	body = lipgloss.NewStyle().Width(contentWidth).Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, footer)
}

// sidebarVisible hides the sidebar on narrow terminals even when toggled on.
func (m Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= 2*sidebarWidth
}

// layout resizes the components to the current window.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	contentWidth := m.width
	if m.sidebarVisible() {
		contentWidth -= sidebarWidth
	}

	editorWidth := contentWidth
	if contentWidth >= 100 {
		editorWidth = contentWidth * 2 / 3
	}
	editorHeight := m.height - 14
	if editorHeight < 5 {
		editorHeight = 5
	}
	m.editor.SetWidth(maxInt(editorWidth-4, 20))
	m.editor.SetHeight(editorHeight)

	m.resizeHelp(maxInt(contentWidth-4, 20), maxInt(m.height-10, 5))
}

// resizeHelp re-renders the help markdown at the given size.
func (m *Model) resizeHelp(width, height int) {
	m.help.Width = width
	m.help.Height = height

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		m.renderer = r
	}
	m.help.SetContent(m.renderMarkdown(debugHelpMarkdown))
}

// renderMarkdown renders markdown, falling back to the raw text.
func (m Model) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}
