// Package http exposes the bot over a small JSON API: create a
// conversation, post messages, read replies. It also serves health and
// prometheus metrics endpoints.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmoraisb/maitred"
	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server handles the HTTP surface for one bot.
type Server struct {
	bot    *maitred.Bot
	logger *slog.Logger
}

// MessageRequest is the body of POST /conversations/{id}/messages.
type MessageRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

// MessageResponse carries the replies produced by one turn.
type MessageResponse struct {
	ConversationID string         `json:"conversation_id"`
	Replies        []domain.Reply `json:"replies"`
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the bot.
func NewHandler(bot *maitred.Bot, opts ...Option) http.Handler {
	s := &Server{
		bot:    bot,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/conversations", s.createConversation)
	r.Post("/conversations/{id}/messages", s.postMessage)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// createConversation allocates a conversation ID and runs the join
// turn, so the response carries the welcome message.
func (s *Server) createConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := uuid.NewString()

	replies, err := s.bot.Turn(r.Context(), domain.Join(conversationID))
	if err != nil {
		s.logger.Error("join turn failed", "conversation_id", conversationID, "err", err)
		http.Error(w, "failed to start conversation", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusCreated, MessageResponse{
		ConversationID: conversationID,
		Replies:        replies,
	})
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	var body MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("invalid message body", "err", err)
		return
	}
	if body.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	input := domain.Message(conversationID, body.Text)
	input.Locale = body.Locale
	replies, err := s.bot.Turn(r.Context(), input)
	if err != nil {
		s.logger.Error("turn failed", "conversation_id", conversationID, "err", err)
		http.Error(w, "failed to process message", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusOK, MessageResponse{
		ConversationID: conversationID,
		Replies:        replies,
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
