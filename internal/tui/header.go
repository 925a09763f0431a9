package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/reportdeck/reportdeck/internal/model"
	"github.com/reportdeck/reportdeck/internal/ui"
)

// RenderHeader shows the report title on the left and its outcome
// tallies on the right.
func RenderHeader(rep *model.Report, query string, width int) string {
	title := "reportdeck"
	if rep != nil && rep.Title != "" {
		title = fmt.Sprintf("reportdeck | %s", rep.Title)
	}
	if query != "" {
		title += fmt.Sprintf(" | q=%s", query)
	}
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(" " + title)

	stats := ""
	if rep != nil {
		s := rep.Stats
		stats = fmt.Sprintf("%s %s %s %s ",
			ui.StyleSuccess.Render(fmt.Sprintf("%d passed", s.Expected)),
			ui.StyleFailure.Render(fmt.Sprintf("%d failed", s.Unexpected)),
			ui.StyleWarning.Render(fmt.Sprintf("%d flaky", s.Flaky)),
			ui.StyleMuted.Render(fmt.Sprintf("%d skipped", s.Skipped)),
		)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(stats)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + stats)
}
