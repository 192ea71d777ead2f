package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/infrastructure/db/memory"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Session stub
// ---------------------------------------------------------------------------

type stubSession struct {
	attrs         domain.SessionAttributes
	loadErr       error
	authErr       error
	invalidateErr error
	authCalls     int
	invalidated   bool
}

func anonymousSession() *stubSession {
	return &stubSession{}
}

func sessionFor(u *domain.User) *stubSession {
	return &stubSession{attrs: domain.SessionAttributes{Username: u.Username, Role: u.Role, UserID: u.ID}}
}

func (s *stubSession) Attributes(_ context.Context) (domain.SessionAttributes, error) {
	if s.loadErr != nil {
		return domain.SessionAttributes{}, s.loadErr
	}
	return s.attrs, nil
}

func (s *stubSession) Authenticate(_ context.Context, attrs domain.SessionAttributes) error {
	s.authCalls++
	if s.authErr != nil {
		return s.authErr
	}
	s.attrs = attrs
	return nil
}

func (s *stubSession) Invalidate(_ context.Context) error {
	s.invalidated = true
	s.attrs = domain.SessionAttributes{}
	return s.invalidateErr
}

// ---------------------------------------------------------------------------
// Repository helpers
// ---------------------------------------------------------------------------

var errDBDown = errors.New("db unavailable")

// brokenUserRepo fails every call that reaches the database.
type brokenUserRepo struct {
	*memory.UserRepository
}

func (brokenUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, errDBDown
}

func (brokenUserRepo) ExistsByUsername(context.Context, string) (bool, error) {
	return false, errDBDown
}

func seedUser(repo *memory.UserRepository, id int64, username, nickname, role string) *domain.User {
	u := &domain.User{ID: id, Username: username, Password: "pw-" + username, Nickname: nickname, Role: role}
	repo.Put(u)
	return u
}
