package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yourusername/chatwidget/internal/protocol"
)

func TestChatManager_AppendAssignsIdentity(t *testing.T) {
	cm := NewChatManager()
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	cm.now = func() time.Time { return fixed }

	a := cm.Append(protocol.SenderUser, "first")
	b := cm.Append(protocol.SenderUser, "second")

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, fixed, a.Timestamp)
	require.Equal(t, "2025-03-04 05:06:07", a.ToPayload().Timestamp)
}

func TestChatManager_MessagesReturnsCopy(t *testing.T) {
	cm := NewChatManager()
	cm.Append(protocol.SenderUser, "hi")

	got := cm.Messages()
	got[0].Content = "mutated"

	require.Equal(t, "hi", cm.Messages()[0].Content)
}

func TestChatManager_ConcurrentAppend(t *testing.T) {
	cm := NewChatManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cm.Append(protocol.SenderUser, "x")
			_ = cm.Messages()
		}()
	}
	wg.Wait()

	require.Equal(t, 50, cm.Len())
}
