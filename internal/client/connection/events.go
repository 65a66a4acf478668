package connection

import (
	"context"

	"github.com/yourusername/chatwidget/internal/protocol"
)

// Event is the outcome of one request to the chat server
type Event interface {
	isEvent()
}

// Op names the request an event belongs to
type Op string

const (
	OpHistory Op = "history"
	OpSend    Op = "send"
)

// HistoryEvent is sent when the history fetch succeeds
type HistoryEvent struct {
	Messages []protocol.Message
}

func (HistoryEvent) isEvent() {}

// ReplyEvent is sent when a send request succeeds
type ReplyEvent struct {
	Reply protocol.SendResponse
}

func (ReplyEvent) isEvent() {}

// ErrorEvent is sent when any request fails
type ErrorEvent struct {
	Op  Op
	Err error
}

func (ErrorEvent) isEvent() {}

// Message returns the text shown to the user for this failure
func (e ErrorEvent) Message() string {
	switch e.Op {
	case OpHistory:
		return "Could not load chat history: " + e.Err.Error()
	case OpSend:
		return "Message not sent: " + e.Err.Error()
	}
	return e.Err.Error()
}

// LoadHistory runs the history fetch and folds the result into an Event
func LoadHistory(ctx context.Context, api ChatAPI) Event {
	messages, err := api.FetchHistory(ctx)
	if err != nil {
		return ErrorEvent{Op: OpHistory, Err: err}
	}
	return HistoryEvent{Messages: messages}
}

// SendMessage runs a send request and folds the result into an Event
func SendMessage(ctx context.Context, api ChatAPI, text string) Event {
	reply, err := api.Send(ctx, text)
	if err != nil {
		return ErrorEvent{Op: OpSend, Err: err}
	}
	return ReplyEvent{Reply: reply}
}
