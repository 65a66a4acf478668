package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourusername/chatwidget/internal/protocol"
)

const defaultMaxBodyBytes = 64 * 1024

// Options configures a Server
type Options struct {
	AutoReply    string // stored as an admin message after every user send when set
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// Server serves the chat HTTP endpoints
type Server struct {
	chatManager  *ChatManager
	validate     *validator.Validate
	registry     *prometheus.Registry
	metrics      *metrics
	logger       *slog.Logger
	autoReply    string
	maxBodyBytes int64
}

// NewServer creates a new chat server with an empty transcript
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	chatManager := NewChatManager()
	registry := prometheus.NewRegistry()

	return &Server{
		chatManager:  chatManager,
		validate:     validator.New(),
		registry:     registry,
		metrics:      newMetrics(registry, chatManager),
		logger:       opts.Logger,
		autoReply:    strings.TrimSpace(opts.AutoReply),
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// ChatManager exposes the transcript store
func (s *Server) ChatManager() *ChatManager {
	return s.chatManager
}

// Handler returns the routed and instrumented HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET "+protocol.PathMessages, s.instrument("messages", s.handleMessages))
	mux.Handle("POST "+protocol.PathSend, s.instrument("send", s.handleSend))
	mux.Handle("POST "+protocol.PathAdminReply, s.instrument("admin_reply", s.handleAdminReply))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// handleMessages returns the whole transcript in insertion order
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages := s.chatManager.Messages()
	s.logger.Debug("history requested", "count", len(messages))
	writeJSON(w, http.StatusOK, messages)
}

// handleSend stores a user message and echoes the stored record back
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSendRequest(w, r)
	if !ok {
		return
	}

	stored := s.chatManager.Append(protocol.SenderUser, req.Message)
	s.metrics.messages.WithLabelValues(string(protocol.SenderUser)).Inc()
	s.logger.Info("message stored", "id", stored.ID, "sender", stored.Sender)

	if s.autoReply != "" {
		reply := s.chatManager.Append(protocol.SenderAdmin, s.autoReply)
		s.metrics.messages.WithLabelValues(string(protocol.SenderAdmin)).Inc()
		s.logger.Debug("auto reply stored", "id", reply.ID)
	}

	payload := stored.ToPayload()
	writeJSON(w, http.StatusOK, protocol.SendResponse{
		ID:        payload.ID,
		Sender:    payload.Sender,
		Content:   payload.Content,
		Timestamp: payload.Timestamp,
	})
}

// handleAdminReply stores a message from the staff side
func (s *Server) handleAdminReply(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSendRequest(w, r)
	if !ok {
		return
	}

	stored := s.chatManager.Append(protocol.SenderAdmin, req.Message)
	s.metrics.messages.WithLabelValues(string(protocol.SenderAdmin)).Inc()
	s.logger.Info("admin reply stored", "id", stored.ID)

	writeJSON(w, http.StatusOK, stored.ToPayload())
}

// decodeSendRequest reads and validates a {"message": ...} body, writing the error response itself
func (s *Server) decodeSendRequest(w http.ResponseWriter, r *http.Request) (protocol.SendRequest, bool) {
	var req protocol.SendRequest

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := protocol.Decode(r.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return req, false
		}
		s.logger.Warn("invalid send body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
			writeError(w, http.StatusBadRequest, "Message too long")
			return req, false
		}
		writeError(w, http.StatusBadRequest, "Empty message")
		return req, false
	}

	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := protocol.Encode(w, v); err != nil {
		slog.Error("failed to write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, protocol.ErrorPayload{Error: message})
}
