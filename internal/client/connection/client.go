package connection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/chatwidget/internal/protocol"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response body is kept for the error message
const maxErrorBody = 512

var (
	// ErrRequest means the request never produced a response (DNS, refused, timeout, cancelled)
	ErrRequest = errors.New("request failed")
	// ErrStatus means the server answered with a non-2xx status
	ErrStatus = errors.New("unexpected status")
	// ErrDecode means the response body was not the expected JSON
	ErrDecode = errors.New("malformed response")
)

// StatusError carries the status code and server-provided reason of a non-2xx response
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d %s", ErrStatus, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s: %d %s", ErrStatus, e.Code, e.Message)
}

// Is makes errors.Is(err, ErrStatus) match
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Client talks JSON over HTTP to the chat server
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new chat client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchHistory reads the full transcript from GET /chat/messages
func (c *Client) FetchHistory(ctx context.Context) ([]protocol.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+protocol.PathMessages, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	var messages []protocol.Message
	if err := c.do(req, &messages); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	c.logger.Debug("history fetched", "count", len(messages))
	return messages, nil
}

// Send posts {"message": text} to POST /chat/send and returns the server's reply
func (c *Client) Send(ctx context.Context, text string) (protocol.SendResponse, error) {
	var body bytes.Buffer
	if err := protocol.Encode(&body, protocol.SendRequest{Message: text}); err != nil {
		return protocol.SendResponse{}, fmt.Errorf("send: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+protocol.PathSend, &body)
	if err != nil {
		return protocol.SendResponse{}, fmt.Errorf("send: %w: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var reply protocol.SendResponse
	if err := c.do(req, &reply); err != nil {
		return protocol.SendResponse{}, fmt.Errorf("send: %w", err)
	}

	c.logger.Debug("reply received", "id", reply.ID)
	return reply, nil
}

// do executes req and decodes a 2xx JSON body into out
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := protocol.Decode(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// statusError builds a StatusError, preferring the server's {"error": ...} text
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload protocol.ErrorPayload
	if err := protocol.Decode(bytes.NewReader(raw), &payload); err == nil && payload.Error != "" {
		return &StatusError{Code: resp.StatusCode, Message: payload.Error}
	}
	return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}
