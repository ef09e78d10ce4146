package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashstar-ai/mainframe/internal/model/chat"
	"github.com/ashstar-ai/mainframe/internal/model/persona"
	"github.com/ashstar-ai/mainframe/internal/pkg/logger"
	"github.com/ashstar-ai/mainframe/internal/service/ai"
	chatService "github.com/ashstar-ai/mainframe/internal/service/chat"
	"github.com/ashstar-ai/mainframe/pkg/utils"
)

// SentinelReply answers chat requests that hit an unexpected failure. The
// chat endpoint always returns some reply, never an error body.
const SentinelReply = "{{WARNING}} Connection severed. Neural interface offline. Retry shortly."

// Resolver produces a reply for a prompt, or reports total failure.
type Resolver interface {
	Resolve(ctx context.Context, prompt string) (ai.Result, error)
}

// ConversationLog is the slice of the conversation service the handler uses.
type ConversationLog interface {
	CreateSession(ctx context.Context, userID, personaID, title string) (chat.Session, error)
	ListSessions(ctx context.Context, userID, personaID string) ([]chat.Session, error)
	RecordTurn(ctx context.Context, turn chat.Turn) error
	Transcript(ctx context.Context, sessionID string) ([]chat.Turn, error)
	UserStats(ctx context.Context, userID string) (chatService.Stats, error)
}

// Handler owns the chat boundary: the always-answering chat endpoint plus
// the session/history routes.
type Handler struct {
	conversations ConversationLog
	resolver      Resolver
	builder       *ai.Builder
	offline       *ai.Selector
	personas      persona.Store
	log           *logger.Logger
}

// New wires the chat handler. Dependencies are passed in explicitly so tests
// can substitute doubles for the resolver and the log.
func New(conversations ConversationLog, resolver Resolver, builder *ai.Builder, offline *ai.Selector, personas persona.Store, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		conversations: conversations,
		resolver:      resolver,
		builder:       builder,
		offline:       offline,
		personas:      personas,
		log:           log,
	}
}

// RegisterRoutes mounts the chat and history routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/{sessionID}", h.handleTranscript)
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/sessions/{userID}/{personaID}", h.handleListSessions)
	r.Get("/stats/{userID}", h.handleStats)
}

type chatRequest struct {
	Message       string `json:"message"`
	PersonaID     string `json:"personaId"`
	IsPremiumTier bool   `json:"isPremiumTier"`
	UserID        string `json:"userId"`
	SessionID     string `json:"sessionId"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat runs one exchange: record the user turn, build the prompt,
// resolve across providers, degrade to the offline table on total failure,
// record the assistant turn, answer. Every branch ends in HTTP 200 with a
// reply; persistence problems never change the reply already computed.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Message == "" {
		h.log.Warn("malformed chat request", "error", errString(err))
		utils.RespondJSON(w, http.StatusOK, chatResponse{Reply: SentinelReply})
		return
	}

	persist := payload.UserID != "" && payload.SessionID != ""
	if persist {
		h.recordTurn(ctx, payload, chat.RoleUser, payload.Message)
	}

	prompt := h.builder.Build(payload.PersonaID, payload.Message, payload.IsPremiumTier)

	var reply string
	result, err := h.resolver.Resolve(ctx, prompt)
	switch {
	case err == nil:
		reply = result.Text
	case errors.Is(err, ai.ErrExhausted):
		h.log.Warn("all providers failed, engaging simulation", "persona", payload.PersonaID)
		reply = h.offline.Pick(payload.PersonaID)
	default:
		h.log.Error("chat resolution failed unexpectedly", "error", err.Error())
		reply = SentinelReply
	}

	if persist {
		h.recordTurn(ctx, payload, chat.RoleAssistant, reply)
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// recordTurn appends one turn best-effort. A failed write is an operator
// event only.
func (h *Handler) recordTurn(ctx context.Context, payload chatRequest, role, text string) {
	turn := chat.Turn{
		SessionID: payload.SessionID,
		UserID:    payload.UserID,
		PersonaID: payload.PersonaID,
		Role:      role,
		Text:      text,
	}
	if err := h.conversations.RecordTurn(ctx, turn); err != nil {
		h.log.Warn("chat log failed, response sent anyway",
			"session", payload.SessionID,
			"role", role,
			"error", err.Error(),
		)
	}
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID    string `json:"userId"`
		PersonaID string `json:"personaId"`
		Title     string `json:"title"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := h.personas.FindByID(payload.PersonaID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "persona not found")
		return
	}

	session, err := h.conversations.CreateSession(r.Context(), payload.UserID, payload.PersonaID, payload.Title)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	personaID := chi.URLParam(r, "personaID")

	sessions, err := h.conversations.ListSessions(r.Context(), userID, personaID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "session fetch error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sessions)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, err := h.conversations.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "history fetch error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, turns)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	stats, err := h.conversations.UserStats(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "stats fetch error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, stats)
}

func errString(err error) string {
	if err == nil {
		return "empty message"
	}
	return err.Error()
}
