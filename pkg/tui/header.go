package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const logo = `┏━╸┏━╸┏━┓╺┳╸
┃  ┣╸ ┣┳┛ ┃
┗━╸┗━╸╹┗╸ ╹ admin`

func renderHeader(width int, title string, badge string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	logoRendered := logoStyle.Render(logo)

	left := lipgloss.JoinVertical(lipgloss.Left, "", titleStyle.Render(title), badge)

	contentWidth := width - 2
	gap := contentWidth - lipgloss.Width(left) - lipgloss.Width(logoRendered)
	if gap < 1 {
		return headerPadding.Render(left)
	}

	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		left,
		lipgloss.NewStyle().Width(gap).Render(""),
		logoRendered,
	)
	return headerPadding.Render(headerContent)
}
