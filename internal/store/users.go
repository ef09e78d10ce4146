package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ashstar-ai/mainframe/internal/model/user"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// FindUserByEmail returns the user with the given email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// CreateUser inserts a new user record.
func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	return s.db.WithContext(ctx).Create(&u).Error
}

// UpdateUser persists changed fields of an existing user.
func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	return s.db.WithContext(ctx).Save(&u).Error
}
