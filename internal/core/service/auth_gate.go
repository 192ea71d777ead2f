package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// AuthGate resolves the caller of a request from their session.
//
// By default the role and user id are taken from the session as written at
// login, so a role change made by an admin only reaches the affected user at
// their next login. With revalidate set, every resolution re-reads the user
// from the directory and uses the stored role instead.
type AuthGate struct {
	users      ports.UserRepository
	revalidate bool
	log        zerolog.Logger
}

func NewAuthGate(users ports.UserRepository, revalidate bool, log zerolog.Logger) *AuthGate {
	return &AuthGate{users: users, revalidate: revalidate, log: log}
}

// ResolveIdentity returns domain.Anonymous for sessions without login
// attributes. When revalidating, a session naming a user that no longer
// exists fails with domain.ErrUserNotFound.
func (g *AuthGate) ResolveIdentity(ctx context.Context, sess ports.Session) (domain.Identity, error) {
	attrs, err := sess.Attributes(ctx)
	if err != nil {
		return domain.Anonymous, fmt.Errorf("resolve identity: %w", err)
	}

	identity := domain.IdentityFrom(attrs)
	if identity.IsAnonymous() || !g.revalidate {
		return identity, nil
	}

	user, err := g.users.FindByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			g.log.Warn().Str("username", identity.Username).Msg("session names a user that no longer exists")
		}
		return domain.Anonymous, fmt.Errorf("resolve identity: %w", err)
	}
	return domain.Identity{Username: user.Username, Role: user.Role, UserID: user.ID}, nil
}

// IsAdmin never fails: any error while resolving the identity counts as not admin.
func (g *AuthGate) IsAdmin(ctx context.Context, sess ports.Session) bool {
	identity, err := g.ResolveIdentity(ctx, sess)
	if err != nil {
		g.log.Warn().Err(err).Msg("admin check could not resolve identity")
		return false
	}
	return identity.IsAdmin()
}
