package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
	"github.com/Mr-Dark-debug/codementor/pkg/timeutil"
)

// renderEditorTab renders the editor with the compact analysis summary
// beside it on wide terminals.
func renderEditorTab(m *Model, width, height int) string {
	if width < 100 {
		return renderEditorPanel(m, width, height)
	}
	editorWidth := width * 2 / 3
	summaryWidth := width - editorWidth
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderEditorPanel(m, editorWidth, height),
		renderSummaryPanel(m, summaryWidth, height))
}

// renderEditorPanel renders the toolbar, the textarea and the output panel.
func renderEditorPanel(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	style := panelStyle
	if m.editorFocused {
		titleStyle = panelTitleStyle
		style = panelActiveStyle
	}

	lineCount := len(m.sim.LineNumbers())
	title := titleStyle.Render("Code Editor") + "  " +
		badgeLanguageStyle.Render(m.sim.Language()) + "  " +
		dimStyle.Render(fmt.Sprintf("%d lines", lineCount))

	var run string
	if m.sim.IsRunning() {
		run = buttonDisabledStyle.Render(m.spinner.View() + " Running...")
	} else {
		run = buttonStyle.Render("▶ Run Code")
	}
	toolbar := buttonStyle.Render("↺ Reset") + " " + run

	var lines []string
	lines = append(lines, title, toolbar, "", m.editor.View())

	if out := m.sim.Output(); out != "" {
		failed := m.lastResult != nil && m.lastResult.Failed
		lines = append(lines, "", renderOutput(out, failed, width-4))
		if m.lastResult != nil {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("run %s  %s",
				shortID(m.lastResult.RunID, 8),
				timeutil.FormatDuration(m.lastResult.Duration))))
		}
	}

	return style.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderOutput renders the output panel. Failed runs are shown in red.
func renderOutput(out string, failed bool, width int) string {
	style := outputStyle
	if failed {
		style = outputErrorStyle
	}
	return detailSectionStyle.Render("Output:") + "\n" +
		style.Width(maxInt(width, 10)).Render(out)
}

// renderSummaryPanel renders the compact analysis next to the editor.
func renderSummaryPanel(m *Model, width, height int) string {
	inner := width - 4
	var lines []string
	lines = append(lines, panelTitleDimStyle.Render("Analysis"), "")

	if m.report == nil {
		lines = append(lines, emptyStateStyle.Render("No analysis yet."))
		return panelStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
	}

	lines = append(lines, detailRow("Overall Score", statValueStyle.Foreground(colorGreen).Render(m.report.Grade)))
	for _, h := range m.report.Highlights {
		lines = append(lines, detailRow(h.Label, fmt.Sprintf("%d/100", h.Score)))
	}

	lines = append(lines, "")
	for _, q := range m.report.Quality {
		lines = append(lines, renderUsageBar(q.Name, q.Score, 15, maxInt(inner-22, 5), colorBlue))
	}

	counts := catalog.CountIssues(m.activeIssues())
	lines = append(lines, "",
		badgeErrorStyle.Render(fmt.Sprintf("%d errors", counts.Errors))+" "+
			badgeWarningStyle.Render(fmt.Sprintf("%d warnings", counts.Warnings)))

	if len(lines) > height {
		lines = lines[:height]
	}
	return panelStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// shortID returns first n characters of an ID string.
func shortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}
