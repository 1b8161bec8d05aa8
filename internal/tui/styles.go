package tui

import "github.com/charmbracelet/lipgloss"

var (
	boardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	achievedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	failedCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	unreachedCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	cursorCellStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	todayCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Bold(true).
			Underline(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	boardStyle = lipgloss.NewStyle().Padding(1, 2)
)
