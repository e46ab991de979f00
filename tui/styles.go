package tui

import "github.com/charmbracelet/lipgloss"

const (
	seaColor    = "#0EA5E9"
	sandColor   = "#F59E0B"
	pearlColor  = "#F5F5F4"
	errorColor  = "#EF4444"
	okColor     = "#10B981"
	dimColor    = "#6B7280"
	heartsColor = "#F43F5E"
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(seaColor)).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(sandColor)).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(pearlColor))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(seaColor)).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(okColor))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	HeartsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(heartsColor))
)
