package ui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yourusername/chatwidget/internal/client/connection"
	"github.com/yourusername/chatwidget/internal/protocol"
	"github.com/yourusername/chatwidget/mocks"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestModel(t *testing.T) (Model, *mocks.MockChatAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockChatAPI(ctrl)
	return NewModel(api, Options{Logger: quietLogger}), api
}

// nextEvent runs cmd, expanding batches in order, and returns the first connection event it yields
func nextEvent(t *testing.T, cmd tea.Cmd) connectionEventMsg {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")

	switch msg := cmd().(type) {
	case connectionEventMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if ev, ok := c().(connectionEventMsg); ok {
				return ev
			}
		}
	}
	t.Fatal("command produced no connection event")
	return connectionEventMsg{}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestInit_RendersHistoryInOrder(t *testing.T) {
	m, api := newTestModel(t)
	history := []protocol.Message{
		{Sender: "user", Content: "one"},
		{Sender: "admin", Content: "two"},
		{Sender: "user", Content: "three"},
		{Sender: "bot", Content: "four"},
	}
	api.EXPECT().FetchHistory(gomock.Any()).Return(history, nil).Times(1)

	m, _ = update(t, m, nextEvent(t, m.Init()))

	got := m.Transcript()
	require.Len(t, got, len(history))
	wantClasses := []BubbleClass{ClassSent, ClassReceived, ClassSent, ClassReceived}
	for i, msg := range history {
		require.Equal(t, msg.Content, got[i].Content)
		require.Equal(t, wantClasses[i], got[i].Class)
	}
	require.False(t, m.loadingHistory)
	require.True(t, m.panel.AtBottom())
}

func TestInit_EmptyHistory(t *testing.T) {
	m, api := newTestModel(t)
	api.EXPECT().FetchHistory(gomock.Any()).Return([]protocol.Message{}, nil)

	m, _ = update(t, m, nextEvent(t, m.Init()))

	require.Empty(t, m.Transcript())
	require.False(t, m.loadingHistory)
	require.Contains(t, m.View(), "No messages yet.")
}

func TestInit_HistoryFailureShowsErrorBubble(t *testing.T) {
	m, api := newTestModel(t)
	api.EXPECT().FetchHistory(gomock.Any()).Return(nil, connection.ErrDecode)

	m, _ = update(t, m, nextEvent(t, m.Init()))

	got := m.Transcript()
	require.Len(t, got, 1)
	require.Equal(t, ClassError, got[0].Class)
	require.Contains(t, got[0].Content, "Could not load chat history")
	require.ErrorIs(t, m.err, connection.ErrDecode)
	require.False(t, m.loadingHistory)
	require.Contains(t, m.View(), "malformed response")
}

func TestSubmit_BlankInputIsNoop(t *testing.T) {
	for _, input := range []string{"", "   ", "\t \t"} {
		m, api := newTestModel(t)
		api.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

		m.input.SetValue(input)
		before := m.InputValue()
		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

		require.Nil(t, cmd)
		require.Empty(t, m.Transcript())
		require.Zero(t, m.pending)
		require.Equal(t, before, m.InputValue())
	}
}

func TestSubmit_RendersServerEchoAndClearsInput(t *testing.T) {
	m, api := newTestModel(t)
	api.EXPECT().Send(gomock.Any(), "Hello").Return(protocol.SendResponse{Content: "Hi there"}, nil).Times(1)

	m = typeText(t, m, "  Hello ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// nothing is rendered until the server answers
	require.Empty(t, m.Transcript())
	require.Equal(t, 1, m.pending)
	require.Equal(t, "  Hello ", m.InputValue())

	m, _ = update(t, m, nextEvent(t, cmd))

	got := m.Transcript()
	require.Len(t, got, 1)
	require.Equal(t, ClassSent, got[0].Class)
	require.Equal(t, lipgloss.Right, got[0].Align)
	require.Equal(t, "Hi there", got[0].Content)
	require.Empty(t, m.InputValue())
	require.Zero(t, m.pending)
	require.True(t, m.panel.AtBottom())
}

func TestSubmit_ReplyAlwaysRendersAsSent(t *testing.T) {
	m, api := newTestModel(t)
	api.EXPECT().Send(gomock.Any(), "ping").Return(protocol.SendResponse{Sender: "admin", Content: "pong"}, nil)

	m = typeText(t, m, "ping")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, nextEvent(t, cmd))

	require.Equal(t, ClassSent, m.Transcript()[0].Class)
}

func TestSubmit_FailureKeepsInput(t *testing.T) {
	m, api := newTestModel(t)
	api.EXPECT().Send(gomock.Any(), "Hello").Return(protocol.SendResponse{}, &connection.StatusError{Code: 500, Message: "boom"})

	m = typeText(t, m, "Hello")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, nextEvent(t, cmd))

	got := m.Transcript()
	require.Len(t, got, 1)
	require.Equal(t, ClassError, got[0].Class)
	require.Contains(t, got[0].Content, "Message not sent")
	require.Equal(t, "Hello", m.InputValue())
	require.Zero(t, m.pending)
	require.True(t, errors.Is(m.err, connection.ErrStatus))
}

func TestEvents_AppendInResolutionOrder(t *testing.T) {
	m, _ := newTestModel(t)

	// a send that resolves before the history fetch lands first
	m, _ = update(t, m, connectionEventMsg{event: connection.ReplyEvent{Reply: protocol.SendResponse{Content: "early"}}})
	m, _ = update(t, m, connectionEventMsg{event: connection.HistoryEvent{Messages: []protocol.Message{
		{Sender: "admin", Content: "old"},
	}}})

	got := m.Transcript()
	require.Len(t, got, 2)
	require.Equal(t, "early", got[0].Content)
	require.Equal(t, "old", got[1].Content)
}

func TestWindowResize_KeepsBottomAfterRender(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})

	messages := make([]protocol.Message, 12)
	for i := range messages {
		messages[i] = protocol.Message{Sender: "bot", Content: "line"}
	}
	m, _ = update(t, m, connectionEventMsg{event: connection.HistoryEvent{Messages: messages}})

	require.Greater(t, m.panel.MaxScrollOffset(), 0)
	require.Equal(t, m.panel.MaxScrollOffset(), m.panel.ScrollOffset())
}

func TestKeys_Quit(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, _ := newTestModel(t)
		_, cmd := update(t, m, tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		require.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestView_StatusLine(t *testing.T) {
	m, _ := newTestModel(t)
	require.Contains(t, m.View(), "Loading history...")
	require.Contains(t, m.View(), "Fetching messages")

	m, _ = update(t, m, connectionEventMsg{event: connection.HistoryEvent{}})
	require.Contains(t, m.View(), "to send")

	m = typeText(t, m, "hi")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Contains(t, m.View(), "Sending (1 pending)...")
}
