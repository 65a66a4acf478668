package protocol //handles the JSON wire format between widget and chat server

import (
	"encoding/json"
	"io"
)

// Endpoint paths served by the chat server
const (
	PathMessages   = "/chat/messages"
	PathSend       = "/chat/send"
	PathAdminReply = "/admin/chat/reply"
)

// Sender identifies which side of the conversation wrote a message
type Sender string

const (
	SenderUser  Sender = "user"  // the widget's own side
	SenderAdmin Sender = "admin" // staff replies
)

// IsUser reports whether the message was written by the widget's side.
// Any value other than "user" counts as the other side.
func (s Sender) IsUser() bool {
	return s == SenderUser
}

// Message is a single chat record as returned by GET /chat/messages
type Message struct {
	ID        string `json:"id,omitempty"`
	Sender    Sender `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SendRequest is the body of POST /chat/send and POST /admin/chat/reply
type SendRequest struct {
	Message string `json:"message" validate:"required,max=4096"`
}

// SendResponse is the reply to POST /chat/send. Only Content is rendered.
type SendResponse struct {
	ID        string `json:"id,omitempty"`
	Sender    Sender `json:"sender,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Error string `json:"error"`
}

// TimestampLayout is the format used for Message.Timestamp
const TimestampLayout = "2006-01-02 15:04:05"

// Encode writes v as JSON
func Encode(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// Decode reads a single JSON value from r into v
func Decode(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}
