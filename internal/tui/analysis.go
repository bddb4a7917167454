package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderAnalysisTab renders the grade, the highlight cards and the
// selected sub-view.
func renderAnalysisTab(m *Model, width, height int) string {
	title := panelTitleStyle.Render("Code Analysis Results")
	if m.report == nil {
		return panelActiveStyle.Width(width).Height(height).Render(
			title + "\n\n" + emptyStateStyle.Render("Analysis data is loading."))
	}

	r := m.report
	var lines []string
	lines = append(lines,
		title+"  "+dimStyle.Render("Overall Score ")+statValueStyle.Foreground(colorGreen).Render(r.Grade),
	)

	var cards []string
	for _, h := range r.Highlights {
		cards = append(cards, renderStat(fmt.Sprintf("%d/100", h.Score), h.Label, colorBlue))
	}
	if len(cards) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	lines = append(lines, "", renderSubTabs(analysisViewNames, int(m.analysisView)), "")

	inner := width - 4
	switch m.analysisView {
	case AnalysisQuality:
		lines = append(lines, detailSectionStyle.Render("Code Quality Metrics"))
		for _, q := range r.Quality {
			lines = append(lines, renderUsageBar(q.Name, q.Score, 16, clamp(inner-24, 5, 50), colorBlue))
		}
		lines = append(lines, "", dimStyle.Render(fmt.Sprintf("Average %.1f/100", r.AverageScore)))

	case AnalysisMetrics:
		for _, row := range r.Metrics {
			marker := regressedStyle.Render("▼ " + row.Change)
			if row.Improved {
				marker = improvedStyle.Render("▲ " + row.Change)
			}
			lines = append(lines, fmt.Sprintf("%-24s %s  %s",
				truncate(row.Metric.Metric, 24), statValueStyle.Render(fmt.Sprintf("%-8s", row.Value)), marker))
		}

	case AnalysisComplexity:
		lines = append(lines, detailSectionStyle.Render("Code Complexity Distribution"))
		for _, c := range r.Complexity {
			color := lipgloss.Color(c.Color)
			if c.Color == "" {
				color = colorPurple
			}
			lines = append(lines, renderUsageBar(c.Name, c.Value, 12, clamp(inner-20, 5, 50), color))
		}

	case AnalysisInsights:
		lines = append(lines, detailSectionStyle.Render("AI-Powered Insights"))
		for _, in := range r.Insights {
			lines = append(lines, "",
				toneStyle(in.Tone).Render(in.Title),
				lipgloss.NewStyle().Width(maxInt(inner, 10)).Render(dimStyle.Render(in.Body)))
		}
	}

	if len(r.Warnings) > 0 && m.analysisView == AnalysisQuality {
		lines = append(lines, "")
		for _, w := range r.Warnings {
			lines = append(lines, severityWarningStyle.Render("! "+w))
		}
	}

	return panelActiveStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}
