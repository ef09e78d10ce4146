package store

import (
	"context"

	"github.com/ashstar-ai/mainframe/internal/model/chat"
)

// CreateSession inserts a new session record.
func (s *Store) CreateSession(ctx context.Context, session chat.Session) error {
	return s.db.WithContext(ctx).Create(&session).Error
}

// ListSessions returns a user's sessions with one persona, newest first.
func (s *Store) ListSessions(ctx context.Context, userID, personaID string) ([]chat.Session, error) {
	var sessions []chat.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND persona_id = ?", userID, personaID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// CountSessions returns how many sessions a user has across all personas.
func (s *Store) CountSessions(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&chat.Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
