package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// spinnerFrame returns the current spinner glyph
func (m Model) spinnerFrame() string {
	frames := []rune("◐◓◑◒")
	return spinnerStyle.Render(string(frames[m.loadingDots%len(frames)]))
}

// viewLoading fills the transcript area while the first history fetch is in flight
func (m Model) viewLoading(width, height int) string {
	dots := strings.Repeat(".", m.loadingDots)

	loadingText := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("Fetching messages" + dots)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		m.spinnerFrame()+" "+loadingText)
}
