package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
)

// renderExercisesTab renders the filter row, the stats row and the
// list/detail split.
func renderExercisesTab(m *Model, width, height int) string {
	filters := make([]string, len(catalog.FilterLevels))
	active := 0
	for i, level := range catalog.FilterLevels {
		filters[i] = strings.ToUpper(level[:1]) + level[1:]
		if level == m.filter {
			active = i
		}
	}

	// Stats cover every exercise, whatever the filter.
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		renderStat(fmt.Sprintf("%d", m.stats.Completed), "Completed", colorGreen),
		renderStat(fmt.Sprintf("%d", m.stats.PointsEarned), "Points Earned", colorBlue),
		renderStat(fmt.Sprintf("%d%%", m.stats.AvgSuccess), "Avg Success", colorYellow),
	)

	top := lipgloss.JoinVertical(lipgloss.Left,
		panelTitleStyle.Render("Coding Exercises")+"  "+renderSubTabs(filters, active),
		stats)

	bodyHeight := height - lipgloss.Height(top)
	listWidth := width * 45 / 100
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, top,
			renderExerciseList(m, width, bodyHeight/2),
			renderExerciseDetail(m, width, bodyHeight-bodyHeight/2))
	}
	return lipgloss.JoinVertical(lipgloss.Left, top,
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderExerciseList(m, listWidth, bodyHeight),
			renderExerciseDetail(m, width-listWidth, bodyHeight)))
}

func renderStat(value, label string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Padding(0, 2).Render(
		statValueStyle.Foreground(color).Render(value) + " " + dimStyle.Render(label))
}

// renderExerciseList renders one card per filtered exercise.
func renderExerciseList(m *Model, width, height int) string {
	exercises := m.filteredExercises()
	inner := width - 4

	var lines []string
	if len(exercises) == 0 {
		lines = append(lines, emptyStateStyle.Render("No exercises at this level."))
	}
	for _, e := range exercises {
		title := truncate(e.Title, inner-8)
		if e.Completed {
			title = improvedStyle.Render("✓ ") + title
		}
		head := title + "  " + stars(catalog.DifficultyStars(e.Difficulty))
		if e.ID == m.selectedExercise {
			head = itemSelectedStyle.Width(inner).Render(head)
		}

		meta := dimStyle.Render(fmt.Sprintf("%s  %d pts  %d%% success",
			e.TimeEstimate, e.Points, e.CompletionRate))

		tags := e.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		var tagParts []string
		for _, t := range tags {
			tagParts = append(tagParts, "#"+t)
		}

		lines = append(lines, head, meta)
		if len(tagParts) > 0 {
			lines = append(lines, mutedStyle.Render(truncate(strings.Join(tagParts, " "), inner)))
		}
		lines = append(lines, "")
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	return panelStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// renderExerciseDetail renders the selected exercise with its starter code.
// Nothing is shown when the selection is hidden by the filter.
func renderExerciseDetail(m *Model, width, height int) string {
	ex, ok := catalog.FindExercise(m.filteredExercises(), m.selectedExercise)
	if !ok {
		return panelStyle.Width(width).Height(height).Render(
			emptyStateStyle.Render("Select an exercise to see details."))
	}

	var lines []string
	lines = append(lines,
		panelTitleStyle.Render(ex.Title)+"  "+difficultyBadge(ex.Difficulty),
		"",
		ex.Description,
		"",
		detailRow("Time", ex.TimeEstimate),
		detailRow("Points", fmt.Sprintf("%d", ex.Points)),
		detailRow("Tests", fmt.Sprintf("%d test cases", ex.TestCases)),
		"",
		detailSectionStyle.Render("Starter Code"),
		codeBlockStyle.Width(maxInt(width-4, 10)).Render(ex.StarterCode),
		"",
	)

	if ex.Completed {
		lines = append(lines, buttonDisabledStyle.Render("✓ Completed"))
	} else {
		lines = append(lines, buttonStyle.Render("Start Exercise")+" "+hintDescStyle.Render("press s"))
	}

	return panelStyle.Width(width).Height(height).Render(strings.Join(lines, "\n"))
}
