package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
)

const debugHelpMarkdown = `## Understanding Error Types

- **Errors:** Critical issues that prevent code execution
- **Warnings:** Potential problems that should be addressed
- **Suggestions:** Code improvements and best practices

## Quick Actions

Select any issue to see detailed explanations and suggested fixes.
Use the **Quick Fix** action when available to automatically resolve issues.
Press ` + "`x`" + ` to dismiss an issue for the rest of the session.
`

// renderDebugTab renders the issue badges, the sub-tab row and the
// selected sub-view.
func renderDebugTab(m *Model, width, height int) string {
	active := m.activeIssues()
	counts := catalog.CountIssues(active)

	title := panelTitleStyle.Render("Code Analysis") + "  " +
		badgeErrorStyle.Render(fmt.Sprintf("%d errors", counts.Errors)) + " " +
		badgeWarningStyle.Render(fmt.Sprintf("%d warnings", counts.Warnings))

	tabs := renderSubTabs([]string{
		fmt.Sprintf("Issues (%d)", counts.Total()),
		fmt.Sprintf("Suggestions (%d)", counts.Suggestions),
		"Help",
	}, int(m.debugView))

	head := lipgloss.JoinVertical(lipgloss.Left, title, tabs, "")
	bodyHeight := height - lipgloss.Height(head)

	var body string
	switch m.debugView {
	case DebugIssues:
		listWidth := width / 2
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			renderIssueList(m, active, listWidth, bodyHeight),
			renderIssueDetail(m, active, width-listWidth, bodyHeight))
	case DebugSuggestions:
		body = renderSuggestions(active, width, bodyHeight)
	case DebugHelp:
		body = m.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, head, body)
}

// renderIssueList renders the active issues with severity colouring.
func renderIssueList(m *Model, issues []catalog.Issue, width, height int) string {
	inner := width - 4
	var lines []string
	if len(issues) == 0 {
		lines = append(lines, emptyStateStyle.Render("No issues. Nice work!"))
	}
	for _, is := range issues {
		msg := truncate(is.Message, inner-2)
		head := severityIcon(is.Severity) + " " + severityStyle(is.Severity).Render(msg)
		if is.ID == m.selectedIssue {
			head = itemSelectedStyle.Width(inner).Render("▸ " + msg)
		}
		lines = append(lines, head,
			mutedStyle.Render(fmt.Sprintf("  Line %d, Column %d", is.Line, is.Column)))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return panelStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderIssueDetail renders the selected issue. A dismissed selection
// falls back to the empty state.
func renderIssueDetail(m *Model, issues []catalog.Issue, width, height int) string {
	idx := indexOf(issueIDs(issues), m.selectedIssue)
	if idx < 0 {
		return panelStyle.Width(width).Height(height).Render(
			emptyStateStyle.Render("Select an issue to see details"))
	}
	is := issues[idx]
	wrap := lipgloss.NewStyle().Width(maxInt(width-4, 10))

	var lines []string
	lines = append(lines,
		severityIcon(is.Severity)+" "+severityStyle(is.Severity).Bold(true).Render(is.Message),
		"",
		detailRow("Location", fmt.Sprintf("Line %d, Column %d", is.Line, is.Column)),
		"",
		detailSectionStyle.Render("Description:"),
		wrap.Render(dimStyle.Render(is.Description)),
	)
	if is.Suggestion != nil {
		lines = append(lines, "",
			detailSectionStyle.Render("Suggestion:"),
			wrap.Render(dimStyle.Render(*is.Suggestion)))
	}

	actions := buttonDisabledStyle.Render("Learn More")
	if is.Fixable {
		actions = buttonStyle.Background(colorGreen).Render("✓ Quick Fix") + " " + actions
	}
	lines = append(lines, "", actions)

	return panelActiveStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderSuggestions lists the active suggestion-severity issues.
func renderSuggestions(issues []catalog.Issue, width, height int) string {
	wrap := lipgloss.NewStyle().Width(maxInt(width-6, 10))
	var lines []string
	for _, is := range issues {
		if is.Severity != catalog.SeveritySuggestion {
			continue
		}
		lines = append(lines,
			severityIcon(is.Severity)+" "+itemStyle.Bold(true).Render(is.Message),
			"  "+wrap.Render(dimStyle.Render(is.Description)),
			"")
	}
	if len(lines) == 0 {
		lines = append(lines, emptyStateStyle.Render("No suggestions."))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return panelStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}
