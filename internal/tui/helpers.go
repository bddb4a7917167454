package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
)

// ────────────────────────────────────────────────────────────
// Selection helpers
// ────────────────────────────────────────────────────────────

// indexOf returns the position of id in ids, or -1.
func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// stepID moves a selection by delta within ids. A selection that is not
// in the list jumps to the first entry.
func stepID(ids []string, current string, delta int) string {
	if len(ids) == 0 {
		return current
	}
	idx := indexOf(ids, current)
	if idx < 0 {
		return ids[0]
	}
	return ids[clamp(idx+delta, 0, len(ids)-1)]
}

func exerciseIDs(exercises []catalog.Exercise) []string {
	ids := make([]string, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID)
	}
	return ids
}

func issueIDs(issues []catalog.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, is := range issues {
		ids = append(ids, is.ID)
	}
	return ids
}

// ────────────────────────────────────────────────────────────
// Badge and icon rendering
// ────────────────────────────────────────────────────────────

// difficultyBadge renders a tutorial or exercise difficulty label.
func difficultyBadge(level string) string {
	switch level {
	case "beginner", catalog.DifficultyEasy:
		return badgeBeginnerStyle.Render(level)
	case "intermediate", catalog.DifficultyMedium:
		return badgeIntermediateStyle.Render(level)
	default:
		return badgeAdvancedStyle.Render(level)
	}
}

// lessonIcon returns the marker shown before a lesson title.
func lessonIcon(l catalog.Lesson) string {
	if l.Completed {
		return improvedStyle.Render("✓")
	}
	switch l.Kind {
	case "exercise":
		return severityWarningStyle.Render("◆")
	case "challenge":
		return severityErrorStyle.Render("★")
	default:
		return dimStyle.Render("○")
	}
}

// severityStyle returns the style for an issue severity.
func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case catalog.SeverityError:
		return severityErrorStyle
	case catalog.SeverityWarning:
		return severityWarningStyle
	default:
		return severitySuggestionStyle
	}
}

// severityIcon returns a short marker for an issue severity.
func severityIcon(severity string) string {
	switch severity {
	case catalog.SeverityError:
		return severityErrorStyle.Render("✖")
	case catalog.SeverityWarning:
		return severityWarningStyle.Render("▲")
	default:
		return severitySuggestionStyle.Render("•")
	}
}

// toneStyle returns the heading style for an insight tone.
func toneStyle(tone string) lipgloss.Style {
	switch tone {
	case "success":
		return toneSuccessStyle
	case "warning":
		return toneWarningStyle
	default:
		return toneInfoStyle
	}
}

// stars renders n of three stars.
func stars(n int) string {
	n = clamp(n, 0, 3)
	return severityWarningStyle.Render(strings.Repeat("★", n)) +
		mutedStyle.Render(strings.Repeat("☆", 3-n))
}

// ────────────────────────────────────────────────────────────
// Bars and rows
// ────────────────────────────────────────────────────────────

func detailRow(label, value string) string {
	return detailLabelStyle.Render(label) + "  " + detailValueStyle.Render(value)
}

// renderBar renders a horizontal percentage bar of barWidth cells.
func renderBar(pct, barWidth int, color lipgloss.TerminalColor) string {
	if barWidth <= 0 {
		return ""
	}
	pct = clamp(pct, 0, 100)
	filled := barWidth * pct / 100
	if filled < 1 && pct > 0 {
		filled = 1
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// renderUsageBar renders a labelled bar with its percentage.
func renderUsageBar(label string, pct, labelWidth, barWidth int, color lipgloss.TerminalColor) string {
	return fmt.Sprintf("%-*s %s %3d%%", labelWidth, truncate(label, labelWidth), renderBar(pct, barWidth, color), pct)
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
