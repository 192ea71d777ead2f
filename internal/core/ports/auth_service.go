package ports

import (
	"context"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

// AuthGate turns a session into an Identity.
type AuthGate interface {
	ResolveIdentity(ctx context.Context, sess Session) (domain.Identity, error)
	IsAdmin(ctx context.Context, sess Session) bool
}

// RegisterInput carries a self-service registration. Role is accepted so that
// clients sending one are not rejected, but it is never honoured.
type RegisterInput struct {
	Username string
	Password string
	Nickname string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, sess Session, username, password string) (*domain.User, error)
	Logout(ctx context.Context, sess Session) error
	Profile(ctx context.Context, sess Session) (*domain.User, error)
}
