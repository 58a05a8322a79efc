package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("240"))

	focusedButtonStyle = buttonStyle.
				Background(lipgloss.Color("#7D56F4")).
				Bold(true)

	disabledButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("236"))

	pendingToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD75F"))

	successToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5FD787")).
				Bold(true)

	failureToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF5F87")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)
