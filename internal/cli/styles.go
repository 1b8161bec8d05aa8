package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	achievedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	futureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Bold(true).
			Underline(true)
)
