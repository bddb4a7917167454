package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/codementor/internal/catalog"
)

// renderSidebar renders the learning path: the selected tutorial's
// progress, the tutorial list and the selected tutorial's lessons.
func renderSidebar(m *Model, width, height int) string {
	inner := width - 3 // padding + border
	var lines []string

	lines = append(lines, panelTitleStyle.Render("Learning Path"), "")

	if len(m.tutorials) == 0 {
		lines = append(lines, mutedStyle.Render("No tutorials."))
		return sidebarStyle.Width(width - 1).Height(height).Render(strings.Join(lines, "\n"))
	}

	current, ok := catalog.FindTutorial(m.tutorials, m.selectedTutorial)
	if ok {
		lines = append(lines, itemStyle.Bold(true).Render(truncate(current.Title, inner)))
		lines = append(lines, difficultyBadge(current.Difficulty))
		lines = append(lines, renderBar(current.Progress, inner-2, colorBlue))
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d%% completed", current.Progress)))
		lines = append(lines, "")
	}

	lines = append(lines, detailSectionStyle.Render("Tutorials"))
	for _, t := range m.tutorials {
		marker := "  "
		if t.Completed {
			marker = improvedStyle.Render("✓ ")
		}
		label := truncate(fmt.Sprintf("%s%s", marker, t.Title), inner)
		if t.ID == m.selectedTutorial {
			lines = append(lines, itemSelectedStyle.Width(inner).Render(label))
		} else {
			lines = append(lines, itemStyle.Render(label))
		}
		lines = append(lines, mutedStyle.Render(truncate("  "+t.Description, inner)))
	}

	if ok && len(current.Lessons) > 0 {
		lines = append(lines, "", detailSectionStyle.Render("Lessons"))
		for _, l := range current.Lessons {
			label := truncate(l.Title, inner-3)
			row := lessonIcon(l) + " " + label
			if l.ID == m.selectedLesson {
				row = itemSelectedStyle.Width(inner).Render("▸ " + label)
			}
			lines = append(lines, row)
		}
	}

	lines = append(lines, "", renderHints([]hint{{"t", "tutorial"}, {"n/p", "lesson"}}))

	if len(lines) > height {
		lines = lines[:height]
	}
	return sidebarStyle.Width(width - 1).Height(height).Render(strings.Join(lines, "\n"))
}
