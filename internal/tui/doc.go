// Package tui implements the Code Mentor terminal dashboard.
//
// Built with Charmbracelet's BubbleTea, Lipgloss, Bubbles and Glamour.
//
// Component architecture:
//
//	model.go     root model, message routing, Init/Update
//	theme.go     centralized color + style definitions
//	header.go    top bar, tab bar, status line + keyboard hints
//	sidebar.go   learning path (tutorials and lessons)
//	editor.go    code editor, run output, compact analysis
//	exercises.go exercise filters, stats, list and detail
//	analysis.go  quality, metrics, complexity and insights views
//	debug.go     issue list, detail, suggestions and help
//	helpers.go   selection, badges, bars, truncation
package tui
