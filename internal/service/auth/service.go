package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashstar-ai/mainframe/internal/mail"
	"github.com/ashstar-ai/mainframe/internal/model/user"
	"github.com/ashstar-ai/mainframe/internal/pkg/logger"
	"github.com/ashstar-ai/mainframe/internal/store"
)

// ErrEmailRequired rejects logins without an email address.
var ErrEmailRequired = errors.New("email is required")

// Service upserts accounts on login and greets first-time users by mail.
type Service struct {
	records *store.Store
	mailer  mail.Sender
	log     *logger.Logger
}

// NewService wires the auth service. mailer may be nil when no relay is
// configured.
func NewService(records *store.Store, mailer mail.Sender, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{records: records, mailer: mailer, log: log}
}

// Login upserts the user keyed by email. Existing accounts get their name
// and avatar refreshed; new accounts trigger a welcome mail.
func (s *Service) Login(ctx context.Context, name, email, avatar string) (user.User, error) {
	if email == "" {
		return user.User{}, ErrEmailRequired
	}

	existing, err := s.records.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		existing.Name = name
		existing.Avatar = avatar
		if err := s.records.UpdateUser(ctx, existing); err != nil {
			return user.User{}, err
		}
		return existing, nil

	case errors.Is(err, store.ErrNotFound):
		created := user.User{
			ID:       uuid.NewString(),
			Name:     name,
			Email:    email,
			Avatar:   avatar,
			JoinedAt: time.Now().UTC(),
		}
		if err := s.records.CreateUser(ctx, created); err != nil {
			return user.User{}, err
		}
		s.sendWelcome(created)
		return created, nil

	default:
		return user.User{}, err
	}
}

// sendWelcome fires the greeting asynchronously. A lost mail only shows up
// in the logs.
func (s *Service) sendWelcome(u user.User) {
	if s.mailer == nil {
		return
	}

	go func() {
		subject := "Welcome to the Syndicate // AshStar"
		body := fmt.Sprintf("Welcome %s. System Online.", u.Name)
		if err := s.mailer.Send(u.Email, subject, body); err != nil {
			s.log.Warn("welcome mail ignored", "error", err.Error())
		}
	}()
}
