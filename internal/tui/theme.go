package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette (GitHub Dark)
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere
// except catalog-supplied chart colors.

var (
	// Base
	colorBg        = lipgloss.Color("#0d1117")
	colorBgPanel   = lipgloss.Color("#161b22")
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")
	colorCyan   = lipgloss.Color("#76e3ea")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	welcomeTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText)
)

// Tab bar
var (
	tabStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorHighlight).
			Bold(true).
			Padding(0, 2)

	subTabStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1)

	subTabActiveStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Underline(true).
				Bold(true).
				Padding(0, 1)
)

// Panel chrome
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorDivider)

	panelActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.Border{
			Top:    "─",
			Bottom: "",
			Left:   "",
			Right:  "",
		}).
		BorderForeground(colorBlue)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	panelTitleDimStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{Right: "│"}).
			BorderForeground(colorDivider)
)

// Lists
var (
	itemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	itemSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(1, 2)
)

// Badges. Difficulty levels share the tutorial and exercise palettes.
var (
	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1)

	badgeBeginnerStyle = badgeStyle.
				Foreground(colorGreen)

	badgeIntermediateStyle = badgeStyle.
				Foreground(colorYellow)

	badgeAdvancedStyle = badgeStyle.
				Foreground(colorRed)

	badgeLanguageStyle = badgeStyle.
				Foreground(colorBg).
				Background(colorBlue)

	badgeErrorStyle = badgeStyle.
			Foreground(colorText).
			Background(colorRed)

	badgeWarningStyle = badgeStyle.
				Foreground(colorBg).
				Background(colorYellow)
)

// Editor and output
var (
	outputStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Background(colorBgPanel).
			Padding(0, 1)

	outputErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorBgPanel).
				Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorHighlight).
			Padding(0, 1)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Background(colorBgSurface).
				Padding(0, 1)

	codeBlockStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Background(colorBgPanel).
			Padding(0, 1)
)

// Detail rows and bars
var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(colorText)

	detailSectionStyle = lipgloss.NewStyle().
				Foreground(colorTextDim).
				Bold(true)

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	statValueStyle = lipgloss.NewStyle().
			Bold(true)
)

// Issues and insights
var (
	severityErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	severityWarningStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	severitySuggestionStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	toneSuccessStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	toneWarningStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)

	toneInfoStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	improvedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	regressedStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorBgSurface).
				Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)
