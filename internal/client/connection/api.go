//go:generate go run go.uber.org/mock/mockgen -source=api.go -destination=../../../mocks/mock_chat_api.go -package=mocks
package connection

import (
	"context"

	"github.com/yourusername/chatwidget/internal/protocol"
)

// ChatAPI is what the widget needs from the chat server
type ChatAPI interface {
	FetchHistory(ctx context.Context) ([]protocol.Message, error)
	Send(ctx context.Context, text string) (protocol.SendResponse, error)
}

var _ ChatAPI = (*Client)(nil)
