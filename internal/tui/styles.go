package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	incompleteMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	completeMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("76"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	emptyValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("76"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
