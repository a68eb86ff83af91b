package tui

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

func renderHeader(width int, reportPath, progress string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Bold(true)

	left := logoStyle.Render("disputedesk") + DescriptionStyle.Render("  "+filepath.Base(reportPath))
	right := DescriptionStyle.Render(progress)

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right))
}
