// Package chat relays conversations to the hosted completion model.
package chat

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/apperr"
	"github.com/CityPulse/CityPulse-Backend/internal/auth"
	"github.com/CityPulse/CityPulse-Backend/internal/ratelimit"
	"github.com/CityPulse/CityPulse-Backend/internal/respond"
	"github.com/go-chi/chi/v5"
)

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Completer interface {
	Complete(ctx context.Context, turns []Message) (string, error)
}

const (
	preamble = "You are a helpful AI assistant for a sustainable cities platform. " +
		"You help users with environmental issues, city services, and sustainability questions. " +
		"Be friendly, informative, and provide practical advice."
	greeting = "Hello! I'm your AI assistant for sustainable cities. I can help you with " +
		"environmental issues, city services, sustainability questions, and more. How can I assist you today?"
)

type Handler struct {
	// Completer is nil when no API key is configured.
	Completer  Completer
	Limiter    *SubjectLimiter
	HistoryCap int
	Now        func() time.Time
}

type chatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// Conversation builds the turns sent upstream. Without history the persona
// preamble opens the conversation; with history the caller's turns are
// forwarded, keeping at most limit of the latest and dropping model turns
// left at the front. Roles are mapped to the upstream's "user" and "model".
func Conversation(history []Message, message string, limit int) ([]Message, error) {
	if len(history) == 0 {
		return []Message{
			{Role: "user", Content: preamble},
			{Role: "model", Content: greeting},
			{Role: "user", Content: message},
		}, nil
	}

	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	turns := make([]Message, 0, len(history)+1)
	verr := &apperr.ValidationError{}
	for _, m := range history {
		switch m.Role {
		case "user":
			turns = append(turns, Message{Role: "user", Content: m.Content})
		case "assistant", "model":
			turns = append(turns, Message{Role: "model", Content: m.Content})
		default:
			verr.Add("history", "Role must be user or assistant.")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	// The upstream requires the conversation to open with a user turn.
	for len(turns) > 0 && turns[0].Role == "model" {
		turns = turns[1:]
	}
	return append(turns, Message{Role: "user", Content: message}), nil
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	s, err := auth.RequireSession(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if h.Completer == nil {
		log.Println("[chat] GEMINI_API_KEY not configured")
		respond.Message(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	var req chatRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Message(w, http.StatusBadRequest, "Message is required")
		return
	}

	turns, err := Conversation(req.History, req.Message, h.HistoryCap)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(s.SubjectID) {
		ratelimit.Reject(w, time.Minute)
		return
	}

	reply, err := h.Completer.Complete(r.Context(), turns)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	respond.JSON(w, http.StatusOK, chatResponse{Response: reply, Timestamp: now().UTC().Format(time.RFC3339)})
}

func SetupRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Chat)
	return r
}
