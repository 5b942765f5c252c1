package cmd

import "github.com/charmbracelet/lipgloss"

// Terminal palette for reports.
var (
	colorPrimary = lipgloss.Color("63")  // Purple
	colorSuccess = lipgloss.Color("42")  // Green
	colorError   = lipgloss.Color("196") // Red
	colorWarn    = lipgloss.Color("229") // Yellow
	colorMuted   = lipgloss.Color("245") // Light gray

	styleTitle   = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleWarn    = lipgloss.NewStyle().Foreground(colorWarn)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)
