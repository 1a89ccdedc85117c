package tui

import "github.com/charmbracelet/lipgloss"

var (
	subtle = lipgloss.Color("#626262")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3D5A80")).
			Bold(true).
			Padding(0, 1)

	LogStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	PromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EE6C4D")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D35E"))
	InfoStyle    = lipgloss.NewStyle().Foreground(subtle)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)
)
