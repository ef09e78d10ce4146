package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashstar-ai/mainframe/internal/model/chat"
	"github.com/ashstar-ai/mainframe/internal/store"
)

var (
	ErrPersonaRequired = errors.New("persona id is required")
	ErrUserRequired    = errors.New("user id is required")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyText       = errors.New("turn text is empty")
)

// Service manages sessions and the append-only turn log.
type Service struct {
	records *store.Store
}

// NewService wires the conversation service to the record store.
func NewService(records *store.Store) *Service {
	return &Service{records: records}
}

// CreateSession provisions a conversation thread between a user and a
// persona. An empty title gets the default.
func (s *Service) CreateSession(ctx context.Context, userID, personaID, title string) (chat.Session, error) {
	if userID == "" {
		return chat.Session{}, ErrUserRequired
	}
	if personaID == "" {
		return chat.Session{}, ErrPersonaRequired
	}
	if strings.TrimSpace(title) == "" {
		title = chat.DefaultTitle
	}

	session := chat.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		PersonaID: personaID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.records.CreateSession(ctx, session); err != nil {
		return chat.Session{}, err
	}
	return session, nil
}

// ListSessions returns a user's sessions with one persona, newest first.
func (s *Service) ListSessions(ctx context.Context, userID, personaID string) ([]chat.Session, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if personaID == "" {
		return nil, ErrPersonaRequired
	}
	return s.records.ListSessions(ctx, userID, personaID)
}

// RecordTurn appends one turn to the session log. Empty text is rejected:
// the log never holds blank turns.
func (s *Service) RecordTurn(ctx context.Context, turn chat.Turn) error {
	if turn.SessionID == "" {
		return ErrSessionNotFound
	}
	if strings.TrimSpace(turn.Text) == "" {
		return ErrEmptyText
	}

	turn.ID = uuid.NewString()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	return s.records.AppendTurn(ctx, turn)
}

// Transcript returns the stored turns of one session, oldest first.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	return s.records.ListTurns(ctx, sessionID)
}

// Stats summarizes a user's activity for the dashboard.
type Stats struct {
	Sessions int64 `json:"sessions"`
	Turns    int64 `json:"turns"`
}

// UserStats counts a user's sessions and turns across all personas.
func (s *Service) UserStats(ctx context.Context, userID string) (Stats, error) {
	if userID == "" {
		return Stats{}, ErrUserRequired
	}

	sessions, err := s.records.CountSessions(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	turns, err := s.records.CountTurns(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Sessions: sessions, Turns: turns}, nil
}
