package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewChatPanel(t *testing.T) {
	p := NewChatPanel(40, 5)

	if len(p.Bubbles()) != 0 {
		t.Errorf("Expected empty transcript, got %d bubbles", len(p.Bubbles()))
	}
	if !strings.Contains(p.View(), "No messages yet.") {
		t.Errorf("Expected placeholder view, got %q", p.View())
	}
}

func TestChatPanel_AppendKeepsOrder(t *testing.T) {
	p := NewChatPanel(40, 5)

	p.Append(SentBubble("one"), SentBubble("two"))
	p.Append(ErrorBubble("three"))

	got := p.Bubbles()
	if len(got) != 3 {
		t.Fatalf("Expected 3 bubbles, got %d", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Content != want {
			t.Errorf("Bubble %d: expected %q, got %q", i, want, got[i].Content)
		}
	}
}

func TestChatPanel_AppendScrollsToBottom(t *testing.T) {
	p := NewChatPanel(40, 3)

	for i := 0; i < 10; i++ {
		p.Append(SentBubble(fmt.Sprintf("msg %d", i)))
		if !p.AtBottom() {
			t.Fatalf("Expected panel at bottom after append %d", i)
		}
	}

	if p.MaxScrollOffset() != 7 {
		t.Errorf("Expected max offset 7 (10 lines, height 3), got %d", p.MaxScrollOffset())
	}
	if p.ScrollOffset() != p.MaxScrollOffset() {
		t.Errorf("Expected offset %d, got %d", p.MaxScrollOffset(), p.ScrollOffset())
	}
	if !strings.Contains(p.View(), "msg 9") {
		t.Errorf("Expected last message visible, got %q", p.View())
	}
}

func TestChatPanel_ScrollUpThenAppendReturnsToBottom(t *testing.T) {
	p := NewChatPanel(40, 3)
	for i := 0; i < 10; i++ {
		p.Append(SentBubble(fmt.Sprintf("msg %d", i)))
	}

	p.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if p.AtBottom() {
		t.Fatal("Expected page up to leave the bottom")
	}

	p.Append(SentBubble("latest"))
	if !p.AtBottom() {
		t.Error("Expected append to scroll back to bottom")
	}
}

func TestChatPanel_SetSizeRewraps(t *testing.T) {
	p := NewChatPanel(80, 3)
	p.Append(SentBubble(strings.Repeat("word ", 12)))

	before := p.MaxScrollOffset()
	p.SetSize(20, 3)

	if p.MaxScrollOffset() <= before {
		t.Errorf("Expected narrower panel to wrap into more lines (before %d, after %d)", before, p.MaxScrollOffset())
	}
	if !p.AtBottom() {
		t.Error("Expected panel to stay at bottom after resize")
	}
}
