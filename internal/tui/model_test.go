package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/Mr-Dark-debug/codementor/internal/database"
	"github.com/Mr-Dark-debug/codementor/internal/execution"
)

// newTestModel returns a loaded model whose runs complete instantly.
func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default failed: %v", err)
	}
	store, err := database.Open(c)
	if err != nil {
		t.Fatalf("database.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if opts.Step == nil {
		opts.Step = func(time.Duration) error { return nil }
	}
	m := NewModel(store, opts)

	msg := m.loadCatalog()()
	if e, ok := msg.(errMsg); ok {
		t.Fatalf("loadCatalog failed: %v", e.err)
	}
	m = update(t, m, msg)
	return update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+l":
		msg = tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+b":
		msg = tea.KeyMsg{Type: tea.KeyCtrlB}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect runs a command and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findRunFinished(t *testing.T, cmd tea.Cmd) runFinishedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if done, ok := msg.(runFinishedMsg); ok {
			return done
		}
	}
	t.Fatal("expected a runFinishedMsg")
	return runFinishedMsg{}
}

func TestCatalogLoaded(t *testing.T) {
	m := newTestModel(t, Options{SidebarOpen: true})

	if len(m.tutorials) != 2 {
		t.Errorf("expected 2 tutorials, got %d", len(m.tutorials))
	}
	if len(m.exercises) != 3 {
		t.Errorf("expected 3 exercises, got %d", len(m.exercises))
	}
	if m.report == nil || m.report.Grade != "A-" {
		t.Errorf("expected report with grade A-, got %+v", m.report)
	}
	if m.stats.PointsEarned != 100 {
		t.Errorf("expected 100 points earned, got %d", m.stats.PointsEarned)
	}
	if m.selectedTutorial != "1" || m.selectedLesson != "3" {
		t.Errorf("expected tutorial 1 lesson 3, got %s/%s", m.selectedTutorial, m.selectedLesson)
	}
}

func TestRunLifecycle(t *testing.T) {
	m := newTestModel(t, Options{})

	if out := m.sim.Output(); out != "" {
		t.Fatalf("expected empty output before first run, got %q", out)
	}

	m, cmd := press(t, m, "ctrl+r")
	if !m.sim.IsRunning() {
		t.Fatal("expected running flag to be set synchronously")
	}
	if cmd == nil {
		t.Fatal("expected a run command")
	}

	// A second trigger while running is ignored.
	m, again := press(t, m, "ctrl+r")
	if again != nil {
		t.Error("expected no command while a run is in flight")
	}

	done := findRunFinished(t, cmd)
	m = update(t, m, done)

	if m.sim.IsRunning() {
		t.Error("expected running flag cleared after completion")
	}
	if got := m.sim.Output(); got != execution.SuccessOutput {
		t.Errorf("expected %q, got %q", execution.SuccessOutput, got)
	}
	if m.lastResult == nil || m.lastResult.RunID == "" {
		t.Errorf("expected last result with run id, got %+v", m.lastResult)
	}
	if m.lastRunAt.IsZero() {
		t.Error("expected last run time to be recorded")
	}
}

func TestRunFailureShowsError(t *testing.T) {
	m := newTestModel(t, Options{Step: func(time.Duration) error { return errors.New("boom") }})

	m, cmd := press(t, m, "ctrl+r")
	m = update(t, m, findRunFinished(t, cmd))

	if !strings.HasPrefix(m.sim.Output(), "Error: ") {
		t.Errorf("expected error output, got %q", m.sim.Output())
	}
	if m.lastResult == nil || !m.lastResult.Failed {
		t.Error("expected failed result")
	}
	if m.statusMsg != "Run failed  1 runs  1 failed" {
		t.Errorf("expected failed run status, got %q", m.statusMsg)
	}
}

func TestEditingNotifiesCodeChange(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(t, m, "enter")
	if !m.editorFocused {
		t.Fatal("expected editor focus after enter")
	}

	m, _ = press(t, m, "x")
	if !strings.HasSuffix(m.sim.Buffer(), "x") {
		t.Errorf("expected buffer to end with typed rune, got %q", m.sim.Buffer())
	}
	if m.CurrentCode() != m.sim.Buffer() {
		t.Errorf("expected tracked code to match buffer, got %q", m.CurrentCode())
	}

	// Number keys type into the editor instead of switching tabs.
	m, _ = press(t, m, "2")
	if m.activeTab != TabEditor {
		t.Errorf("expected editor tab while focused, got %v", m.activeTab)
	}

	m, _ = press(t, m, "esc")
	if m.editorFocused {
		t.Error("expected esc to leave the editor")
	}
}

func TestResetRestoresInitialWithoutNotify(t *testing.T) {
	initial := "print('hi')"
	m := newTestModel(t, Options{InitialCode: &initial})

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "!")
	_, changes := m.code.get()
	if changes != 1 {
		t.Fatalf("expected 1 change notification, got %d", changes)
	}

	m, _ = press(t, m, "ctrl+l")
	if m.sim.Buffer() != initial || m.editor.Value() != initial {
		t.Errorf("expected reset to %q, got buffer %q editor %q", initial, m.sim.Buffer(), m.editor.Value())
	}
	if _, after := m.code.get(); after != changes {
		t.Errorf("expected reset not to notify, got %d notifications", after)
	}
}

func TestEditorMatchesBufferWithTabs(t *testing.T) {
	initial := "func f() {\n\treturn\n}"
	m := newTestModel(t, Options{InitialCode: &initial})

	want := "func f() {\n    return\n}"
	if m.sim.Buffer() != want {
		t.Fatalf("expected buffer %q, got %q", want, m.sim.Buffer())
	}
	if m.editor.Value() != m.sim.Buffer() {
		t.Fatalf("expected editor %q to match buffer %q", m.editor.Value(), m.sim.Buffer())
	}

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "x")
	if m.editor.Value() != m.sim.Buffer() {
		t.Errorf("after edit: editor %q, buffer %q", m.editor.Value(), m.sim.Buffer())
	}
	if !strings.Contains(m.sim.Buffer(), "    return") {
		t.Errorf("expected indentation to survive the edit, got %q", m.sim.Buffer())
	}

	m, _ = press(t, m, "ctrl+l")
	if m.sim.Buffer() != want || m.editor.Value() != want {
		t.Errorf("after reset: editor %q, buffer %q", m.editor.Value(), m.sim.Buffer())
	}
}

func TestEditorText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a\tb", "a    b"},
		{"x\r\ny", "x\ny"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := editorText(tt.in); got != tt.want {
			t.Errorf("editorText(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestTabNavigation(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(t, m, "3")
	if m.activeTab != TabAnalysis {
		t.Errorf("expected analysis tab, got %v", m.activeTab)
	}
	m, _ = press(t, m, "tab")
	if m.activeTab != TabDebug {
		t.Errorf("expected debug tab, got %v", m.activeTab)
	}
	m, _ = press(t, m, "tab")
	if m.activeTab != TabEditor {
		t.Errorf("expected wrap to editor tab, got %v", m.activeTab)
	}
	m, _ = press(t, m, "shift+tab")
	if m.activeTab != TabDebug {
		t.Errorf("expected wrap back to debug tab, got %v", m.activeTab)
	}
}

func TestExerciseFilterAndStart(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "2")

	m, _ = press(t, m, "h")
	if got := len(m.filteredExercises()); got != 1 {
		t.Fatalf("expected 1 hard exercise, got %d", got)
	}
	if _, ok := catalog.FindExercise(m.filteredExercises(), m.selectedExercise); ok {
		t.Error("expected default selection to be hidden by the hard filter")
	}
	if m.stats.Completed != 1 {
		t.Errorf("expected stats to ignore the filter, got %d completed", m.stats.Completed)
	}

	m, _ = press(t, m, "j")
	if m.selectedExercise != "3" {
		t.Fatalf("expected exercise 3 selected, got %s", m.selectedExercise)
	}

	m, _ = press(t, m, "s")
	if m.activeTab != TabEditor || !m.editorFocused {
		t.Error("expected start to focus the editor")
	}
	if !strings.HasPrefix(m.sim.Buffer(), "class TreeNode") {
		t.Errorf("expected starter code in buffer, got %q", m.sim.Buffer())
	}
	if m.editor.Value() != m.sim.Buffer() {
		t.Error("expected editor and buffer to agree")
	}
}

func TestCompletedExerciseCannotStart(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "2")
	m, _ = press(t, m, "e")
	m, _ = press(t, m, "j")
	if m.selectedExercise != "2" {
		t.Fatalf("expected exercise 2 selected, got %s", m.selectedExercise)
	}

	before := m.sim.Buffer()
	m, _ = press(t, m, "s")
	if m.activeTab != TabExercises {
		t.Errorf("expected to stay on exercises, got %v", m.activeTab)
	}
	if m.sim.Buffer() != before {
		t.Error("expected buffer unchanged for a completed exercise")
	}
}

func TestDismissIssue(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "4")

	if got := len(m.activeIssues()); got != 3 {
		t.Fatalf("expected 3 active issues, got %d", got)
	}

	m, _ = press(t, m, "x")
	active := m.activeIssues()
	if len(active) != 2 {
		t.Fatalf("expected 2 active issues after dismiss, got %d", len(active))
	}
	if counts := catalog.CountIssues(active); counts.Errors != 0 || counts.Warnings != 1 {
		t.Errorf("expected 0 errors 1 warning, got %+v", counts)
	}
	if indexOf(issueIDs(active), m.selectedIssue) != -1 {
		t.Error("expected dismissed selection to leave the detail empty")
	}

	m, _ = press(t, m, "j")
	if m.selectedIssue != "2" {
		t.Errorf("expected selection to move to issue 2, got %s", m.selectedIssue)
	}
}

func TestSubTabsCycle(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(t, m, "3")
	m, _ = press(t, m, "[")
	if m.analysisView != AnalysisInsights {
		t.Errorf("expected insights view, got %d", m.analysisView)
	}

	m, _ = press(t, m, "4")
	m, _ = press(t, m, "]")
	m, _ = press(t, m, "]")
	if m.debugView != DebugHelp {
		t.Errorf("expected help view, got %d", m.debugView)
	}
	if !strings.Contains(m.View(), "Understanding") {
		t.Error("expected help text in view")
	}
}

func TestSidebarNavigation(t *testing.T) {
	m := newTestModel(t, Options{SidebarOpen: true})

	m, _ = press(t, m, "n")
	if m.selectedLesson != "4" {
		t.Errorf("expected lesson 4, got %s", m.selectedLesson)
	}
	m, _ = press(t, m, "t")
	if m.selectedTutorial != "2" {
		t.Errorf("expected tutorial 2, got %s", m.selectedTutorial)
	}
	m, _ = press(t, m, "n")
	if m.selectedLesson != "5" {
		t.Errorf("expected first lesson of tutorial 2, got %s", m.selectedLesson)
	}

	m, _ = press(t, m, "ctrl+b")
	if m.showSidebar {
		t.Error("expected ctrl+b to hide the sidebar")
	}
}

func TestErrMsgSetsStatus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = update(t, m, errMsg{errors.New("disk on fire")})

	if m.err == nil || !strings.Contains(m.statusMsg, "disk on fire") {
		t.Errorf("expected error status, got %q", m.statusMsg)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	m := newTestModel(t, Options{SidebarOpen: true})

	checks := map[string]string{
		"1": "Code Editor",
		"2": "Coding Exercises",
		"3": "Code Analysis Results",
		"4": "Unexpected token",
	}
	for key, want := range checks {
		m, _ = press(t, m, key)
		if view := m.View(); !strings.Contains(view, want) {
			t.Errorf("tab %s: expected view to contain %q", key, want)
		}
	}
}

func TestStepID(t *testing.T) {
	ids := []string{"a", "b", "c"}
	tests := []struct {
		current string
		delta   int
		want    string
	}{
		{"a", 1, "b"},
		{"c", 1, "c"},
		{"a", -1, "a"},
		{"missing", 1, "a"},
	}
	for _, tt := range tests {
		if got := stepID(ids, tt.current, tt.delta); got != tt.want {
			t.Errorf("stepID(%q, %d): expected %q, got %q", tt.current, tt.delta, tt.want, got)
		}
	}
	if got := stepID(nil, "x", 1); got != "x" {
		t.Errorf("expected unchanged selection for empty list, got %q", got)
	}
}
