package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/yourusername/chatwidget/internal/protocol"
)

// ChatMessage represents a stored chat message
type ChatMessage struct {
	ID        string
	Sender    protocol.Sender
	Content   string
	Timestamp time.Time
}

// ToPayload converts a stored message to its wire form
func (m ChatMessage) ToPayload() protocol.Message {
	return protocol.Message{
		ID:        m.ID,
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp.Format(protocol.TimestampLayout),
	}
}

// ChatManager keeps the transcript in memory for the life of the process
type ChatManager struct {
	messages []ChatMessage
	now      func() time.Time
	mu       sync.RWMutex
}

// NewChatManager creates a new chat manager
func NewChatManager() *ChatManager {
	return &ChatManager{
		messages: make([]ChatMessage, 0),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Append stores a new message and returns the stored record
func (cm *ChatManager) Append(sender protocol.Sender, content string) ChatMessage {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	chatMsg := ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Content:   content,
		Timestamp: cm.now(),
	}
	cm.messages = append(cm.messages, chatMsg)
	return chatMsg
}

// Messages returns all messages in insertion order as wire payloads
func (cm *ChatManager) Messages() []protocol.Message {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return lo.Map(cm.messages, func(msg ChatMessage, _ int) protocol.Message {
		return msg.ToPayload()
	})
}

// Len returns the number of stored messages
func (cm *ChatManager) Len() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.messages)
}
