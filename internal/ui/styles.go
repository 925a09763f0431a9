package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleBadge = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

	StyleLabelFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FCD34D")).
				Background(lipgloss.Color("#78350F"))
)

// OutcomeStyle maps a test outcome to its display style.
func OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "expected":
		return StyleSuccess
	case "unexpected":
		return StyleFailure
	case "flaky":
		return StyleWarning
	case "skipped":
		return StyleMuted
	default:
		return StyleInfo
	}
}

// StatusIcon renders the status icon keyed by a test outcome.
func StatusIcon(outcome string) string {
	switch outcome {
	case "expected":
		return StyleSuccess.Render("V")
	case "unexpected":
		return StyleFailure.Render("X")
	case "flaky":
		return StyleWarning.Render("!")
	case "skipped":
		return StyleMuted.Render("-")
	default:
		return StyleMuted.Render("?")
	}
}
