package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - Earthy tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // Light warm beige
	secondaryColor = lipgloss.Color("#7EBB81") // Light forest green
	accentColor    = lipgloss.Color("#A8C9A4") // Soft sage green
	successColor   = lipgloss.Color("#B5D99C") // Bright sage
	mutedColor     = lipgloss.Color("#B8A890") // Light taupe
	inkColor       = lipgloss.Color("#2B2A26") // Dark text on light bubbles
	errorColor     = lipgloss.Color("#E07B7B")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	chatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)

// Bubble styles, one per class
var (
	sentBubbleStyle = lipgloss.NewStyle().
			Foreground(inkColor).
			Background(primaryColor).
			Padding(0, 1)

	receivedBubbleStyle = lipgloss.NewStyle().
				Foreground(inkColor).
				Background(secondaryColor).
				Padding(0, 1)

	errorBubbleStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(errorColor).
				Padding(0, 1)
)
