// Package display renders cards, boards and reports for the terminal.
package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/battleline/cards"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	SeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true)

	WinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	LossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
)

var colorStyles = [cards.NumColors]lipgloss.Style{
	cards.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2")).Bold(true),
	cards.Brown:  lipgloss.NewStyle().Foreground(lipgloss.Color("#B9770E")).Bold(true),
	cards.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("#58D68D")).Bold(true),
	cards.Purple: lipgloss.NewStyle().Foreground(lipgloss.Color("#AF7AC5")).Bold(true),
	cards.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	cards.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F")).Bold(true),
}

// SetColor switches styled output on or off for the whole process.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
