package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/chatwidget/internal/client/connection"
)

// connectionEventMsg wraps the outcome of a request to the chat server
type connectionEventMsg struct {
	event connection.Event
}

// tickMsg is sent periodically for the spinner
type tickMsg time.Time

// historyCmd fetches the transcript once
func historyCmd(api connection.ChatAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return connectionEventMsg{event: connection.LoadHistory(ctx, api)}
	}
}

// sendCmd posts one message
func sendCmd(api connection.ChatAPI, text string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return connectionEventMsg{event: connection.SendMessage(ctx, api, text)}
	}
}

// tickCmd returns a command that sends tick messages for animations
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
