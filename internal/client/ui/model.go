package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/yourusername/chatwidget/internal/client/connection"
	"github.com/yourusername/chatwidget/internal/protocol"
)

const (
	defaultTimeout = 10 * time.Second
	maxInputLength = 4096

	headerHeight = 1
	inputHeight  = 3 // input line plus its border
	statusHeight = 1
	frameSize    = 2 // chat box border
)

// Options configures the widget
type Options struct {
	Title   string
	Timeout time.Duration // per-request timeout
	Logger  *slog.Logger
}

// Model is the chat widget's Bubble Tea model
type Model struct {
	api     connection.ChatAPI // injected so tests can swap the server out
	timeout time.Duration
	logger  *slog.Logger
	title   string

	panel *ChatPanel
	input textinput.Model

	width  int
	height int

	loadingHistory bool
	pending        int // send requests still in flight
	ticking        bool
	loadingDots    int
	err            error // last request failure
}

// NewModel creates the widget around an injected chat API
func NewModel(api connection.ChatAPI, opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "Chat"
	}

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = maxInputLength
	input.Prompt = "> "
	input.Focus()

	m := Model{
		api:            api,
		timeout:        opts.Timeout,
		logger:         opts.Logger,
		title:          opts.Title,
		input:          input,
		width:          80,
		height:         24,
		loadingHistory: true,
		ticking:        true, // Init starts the spinner
	}
	m.panel = NewChatPanel(m.panelSize())
	m.input.Width = m.width - 6
	return m
}

// Init starts the history fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		historyCmd(m.api, m.timeout),
		tickCmd(),
		textinput.Blink,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panel.SetSize(m.panelSize())
		m.input.Width = max(1, m.width-6) // border, padding and prompt
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m, m.panel.Update(msg)

	case connectionEventMsg:
		return m.handleConnectionEvent(msg.event)

	case tickMsg:
		if m.busy() {
			m.loadingDots = (m.loadingDots + 1) % 4
			return m, tickCmd()
		}
		m.ticking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateKeys routes key presses between the transcript and the input field
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		return m, m.panel.Update(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the trimmed input. Blank input is ignored entirely.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.pending++
	m.logger.Debug("sending message", "length", len(text))

	cmds := []tea.Cmd{sendCmd(m.api, text, m.timeout)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, tickCmd())
	}
	return m, tea.Batch(cmds...)
}

// Add new event handlers below when you add new event types in connection/events.go
func (m Model) handleConnectionEvent(event connection.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {

	case connection.HistoryEvent:
		m.loadingHistory = false
		m.err = nil
		m.panel.Append(lo.Map(e.Messages, func(msg protocol.Message, _ int) Bubble {
			return RenderBubble(msg)
		})...)
		m.logger.Info("history rendered", "count", len(e.Messages))
		return m, nil

	case connection.ReplyEvent:
		m.pending = max(0, m.pending-1)
		m.err = nil
		m.panel.Append(SentBubble(e.Reply.Content))
		m.input.Reset()
		return m, nil

	case connection.ErrorEvent:
		switch e.Op {
		case connection.OpHistory:
			m.loadingHistory = false
		case connection.OpSend:
			m.pending = max(0, m.pending-1)
		}
		m.err = e.Err
		m.logger.Error("chat request failed", "op", e.Op, "err", e.Err)
		m.panel.Append(ErrorBubble(e.Message()))
		return m, nil
	}

	return m, nil
}

// Transcript returns the rendered bubbles in order
func (m Model) Transcript() []Bubble {
	return m.panel.Bubbles()
}

// InputValue returns the current content of the input field
func (m Model) InputValue() string {
	return m.input.Value()
}

func (m Model) busy() bool {
	return m.loadingHistory || m.pending > 0
}

func (m Model) panelSize() (int, int) {
	w := m.width - frameSize
	h := m.height - headerHeight - inputHeight - statusHeight - frameSize
	return max(1, w), max(1, h)
}
