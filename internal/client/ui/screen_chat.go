package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the chat screen: title, transcript, input and status line
func (m Model) View() string {
	panelWidth, panelHeight := m.panelSize()

	header := titleStyle.Render(m.title)

	transcript := m.panel.View()
	if m.loadingHistory && len(m.Transcript()) == 0 {
		transcript = m.viewLoading(panelWidth, panelHeight)
	}

	chatBox := chatBoxStyle.
		Width(panelWidth).
		Height(panelHeight).
		Render(transcript)

	inputBox := inputBoxStyle.
		Width(max(1, m.width-2)).
		Render(m.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatBox,
		inputBox,
		m.viewStatus(),
	)
}

// viewStatus renders the one-line status under the input
func (m Model) viewStatus() string {
	spinner := m.spinnerFrame()

	switch {
	case m.loadingHistory:
		return spinner + " " + mutedStyle.Render("Loading history...")
	case m.pending > 0:
		return spinner + " " + mutedStyle.Render(fmt.Sprintf("Sending (%d pending)...", m.pending))
	case m.err != nil:
		return errorStyle.Render("✗ "+m.err.Error()) + mutedStyle.Render("  •  ESC to quit")
	}

	return highlightStyle.Render("ENTER") + mutedStyle.Render(" to send  •  PGUP/PGDN to scroll  •  ESC to quit")
}
