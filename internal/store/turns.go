package store

import (
	"context"

	"github.com/ashstar-ai/mainframe/internal/model/chat"
)

// AppendTurn inserts one chat turn. Turns are append-only.
func (s *Store) AppendTurn(ctx context.Context, turn chat.Turn) error {
	return s.db.WithContext(ctx).Create(&turn).Error
}

// ListTurns returns the turns of one session, oldest first.
func (s *Store) ListTurns(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	var turns []chat.Turn
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&turns).Error
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// CountTurns returns how many turns a user has exchanged in total.
func (s *Store) CountTurns(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&chat.Turn{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
