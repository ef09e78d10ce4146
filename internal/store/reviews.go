package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ashstar-ai/mainframe/internal/model/review"
)

// CreateReview inserts a new review record.
func (s *Store) CreateReview(ctx context.Context, r review.Review) error {
	return s.db.WithContext(ctx).Create(&r).Error
}

// ListReviewsByPersona returns one persona's reviews, newest first.
func (s *Store) ListReviewsByPersona(ctx context.Context, personaID string) ([]review.Review, error) {
	var reviews []review.Review
	err := s.db.WithContext(ctx).
		Where("persona_id = ?", personaID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListReviews returns every review, newest first, for moderation.
func (s *Store) ListReviews(ctx context.Context) ([]review.Review, error) {
	var reviews []review.Review
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetReviewReply stores the admin reply on one review.
func (s *Store) SetReviewReply(ctx context.Context, id, reply string) (review.Review, error) {
	var r review.Review
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return review.Review{}, ErrNotFound
	}
	if err != nil {
		return review.Review{}, err
	}

	r.AdminReply = reply
	if err := s.db.WithContext(ctx).Save(&r).Error; err != nil {
		return review.Review{}, err
	}
	return r, nil
}

// DeleteReview removes one review.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&review.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
