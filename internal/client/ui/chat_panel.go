package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ChatPanel holds the append-only transcript and its scrollable view
type ChatPanel struct {
	bubbles  []Bubble
	viewport viewport.Model
}

// NewChatPanel creates a new chat panel
func NewChatPanel(width, height int) *ChatPanel {
	return &ChatPanel{
		bubbles:  []Bubble{},
		viewport: viewport.New(width, height),
	}
}

// SetSize resizes the panel and re-wraps every bubble
func (c *ChatPanel) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	atBottom := c.AtBottom()
	c.viewport.Width = width
	c.viewport.Height = height
	c.render()
	if atBottom {
		c.viewport.GotoBottom()
	}
}

// Append adds bubbles in order and scrolls to the bottom
func (c *ChatPanel) Append(bubbles ...Bubble) {
	if len(bubbles) == 0 {
		c.viewport.GotoBottom()
		return
	}
	c.bubbles = append(c.bubbles, bubbles...)
	c.render()
	c.viewport.GotoBottom()
}

// Bubbles returns all rendered bubbles in arrival order
func (c *ChatPanel) Bubbles() []Bubble {
	return c.bubbles
}

// AtBottom reports whether the panel is scrolled to its end
func (c *ChatPanel) AtBottom() bool {
	return c.viewport.YOffset >= c.MaxScrollOffset()
}

// ScrollOffset returns the index of the first visible line
func (c *ChatPanel) ScrollOffset() int {
	return c.viewport.YOffset
}

// MaxScrollOffset returns the largest offset the content allows
func (c *ChatPanel) MaxScrollOffset() int {
	return max(0, c.viewport.TotalLineCount()-c.viewport.Height)
}

// Update forwards scroll keys and mouse wheel events to the viewport
func (c *ChatPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// View renders the visible part of the transcript
func (c *ChatPanel) View() string {
	if len(c.bubbles) == 0 {
		return mutedStyle.Render("No messages yet.")
	}
	return c.viewport.View()
}

func (c *ChatPanel) render() {
	rows := make([]string, 0, len(c.bubbles))
	for _, b := range c.bubbles {
		rows = append(rows, b.View(c.viewport.Width))
	}
	c.viewport.SetContent(strings.Join(rows, "\n"))
}
