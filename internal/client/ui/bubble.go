package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yourusername/chatwidget/internal/protocol"
)

// BubbleClass is the visual class of a rendered message
type BubbleClass string

const (
	ClassSent     BubbleClass = "sent"
	ClassReceived BubbleClass = "received"
	ClassError    BubbleClass = "error"
)

// Bubble is a single rendered chat message
type Bubble struct {
	Class   BubbleClass
	Align   lipgloss.Position
	Content string
}

// RenderBubble maps a message to its bubble. Only sender "user" renders as sent.
func RenderBubble(msg protocol.Message) Bubble {
	if msg.Sender.IsUser() {
		return SentBubble(msg.Content)
	}
	return Bubble{Class: ClassReceived, Align: lipgloss.Left, Content: sanitize(msg.Content)}
}

// SentBubble renders content on the widget's own side
func SentBubble(content string) Bubble {
	return Bubble{Class: ClassSent, Align: lipgloss.Right, Content: sanitize(content)}
}

// ErrorBubble renders an inline failure notice
func ErrorBubble(text string) Bubble {
	return Bubble{Class: ClassError, Align: lipgloss.Left, Content: sanitize(text)}
}

// View renders the bubble into a line block exactly width cells wide
func (b Bubble) View(width int) string {
	style := b.style()

	// bubbles take at most three quarters of the row so the two sides stay distinguishable
	maxWidth := width * 3 / 4
	if maxWidth < 1 {
		maxWidth = 1
	}
	bubbleWidth := lipgloss.Width(b.Content) + style.GetHorizontalFrameSize()
	if bubbleWidth > maxWidth {
		bubbleWidth = maxWidth
	}

	rendered := style.Width(bubbleWidth).Render(b.Content)
	return lipgloss.PlaceHorizontal(width, b.Align, rendered)
}

func (b Bubble) style() lipgloss.Style {
	switch b.Class {
	case ClassSent:
		return sentBubbleStyle
	case ClassError:
		return errorBubbleStyle
	default:
		return receivedBubbleStyle
	}
}

// sanitize strips terminal escape sequences from server-provided text
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "")
}
