package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/codementor/pkg/timeutil"
)

// renderHeader produces the top bar:
//
//	Code Mentor  │  12 Lessons  │  850 Points  │  15k+ Students
func renderHeader(m *Model) string {
	sep := headerSepStyle.Render(" │ ")

	brand := "Code Mentor"
	if m.header != nil && m.header.Brand != "" {
		brand = m.header.Brand
	}

	parts := []string{headerBrandStyle.Render(brand)}
	if m.header != nil {
		for _, s := range []string{m.header.Lessons, m.header.Points, m.header.Students} {
			if s == "" {
				continue
			}
			parts = append(parts, sep, headerMetaStyle.Render(s))
		}
	}

	bar := headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))

	// The welcome banner only fits on taller terminals.
	if m.header == nil || m.height < 30 || m.header.Welcome == "" {
		return bar
	}
	welcome := lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(
		welcomeTitleStyle.Render(m.header.Welcome) + "\n" +
			dimStyle.Render(truncate(m.header.Tagline, m.width-2)))
	return lipgloss.JoinVertical(lipgloss.Left, bar, welcome)
}

// renderTabBar produces the row of top-level tabs.
func renderTabBar(m *Model) string {
	var parts []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == TabDebug {
			if n := len(m.activeIssues()); n > 0 {
				label += fmt.Sprintf(" (%d)", n)
			}
		}
		if Tab(i) == m.activeTab {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// renderSubTabs renders a sub-tab row with the active entry underlined.
func renderSubTabs(names []string, active int) string {
	var parts []string
	for i, name := range names {
		if i == active {
			parts = append(parts, subTabActiveStyle.Render(name))
		} else {
			parts = append(parts, subTabStyle.Render(name))
		}
	}
	return strings.Join(parts, mutedStyle.Render("·"))
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	status := m.statusMsg
	if !m.lastRunAt.IsZero() && !m.sim.IsRunning() {
		status = fmt.Sprintf("%s  last run %s", status, timeutil.RelativeTime(m.lastRunAt, m.now()))
	}
	if status != "" {
		if m.err != nil {
			left = statusErrorStyle.Render(status)
		} else {
			left = statusStyle.Render(status)
		}
	}

	switch {
	case m.editorFocused:
		right = renderHints([]hint{
			{"ctrl+r", "run"},
			{"ctrl+l", "reset"},
			{"esc", "leave editor"},
			{"ctrl+c", "quit"},
		})
	case m.activeTab == TabEditor:
		right = renderHints([]hint{
			{"enter", "edit"},
			{"ctrl+r", "run"},
			{"1-4", "tabs"},
			{"ctrl+b", "sidebar"},
			{"q", "quit"},
		})
	case m.activeTab == TabExercises:
		right = renderHints([]hint{
			{"↑↓", "select"},
			{"a/e/m/h", "filter"},
			{"s", "start"},
			{"1-4", "tabs"},
			{"q", "quit"},
		})
	case m.activeTab == TabAnalysis:
		right = renderHints([]hint{
			{"[ ]", "view"},
			{"1-4", "tabs"},
			{"q", "quit"},
		})
	default:
		right = renderHints([]hint{
			{"↑↓", "select"},
			{"x", "dismiss"},
			{"[ ]", "view"},
			{"1-4", "tabs"},
			{"q", "quit"},
		})
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		MaxHeight(1).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
