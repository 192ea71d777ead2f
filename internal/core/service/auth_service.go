package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// AuthService implements registration, login, logout and profile lookup.
type AuthService struct {
	users     ports.UserRepository
	gate      ports.AuthGate
	passwords PasswordScheme
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, gate ports.AuthGate, passwords PasswordScheme, log zerolog.Logger) *AuthService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &AuthService{users: users, gate: gate, passwords: passwords, log: log}
}

// Register creates a USER account. Any role supplied in the input is ignored.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		s.log.Warn().Str("username", input.Username).Msg("registration failed: username already exists")
		return nil, domain.ErrUsernameConflict
	}

	if input.Role != "" && input.Role != domain.RoleUser {
		s.log.Warn().Str("username", input.Username).Str("requested_role", input.Role).Msg("ignoring role supplied at registration")
	}

	stored, err := s.passwords.Encode(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: encode password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username: input.Username,
		Password: stored,
		Nickname: input.Nickname,
		Role:     domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameConflict) {
			s.log.Warn().Str("username", input.Username).Msg("registration failed: username already exists")
			return nil, domain.ErrUsernameConflict
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("new user registered")
	return created, nil
}

// Login checks the credentials and, on success, writes the login attributes
// to the session. Unknown usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, sess ports.Session, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("username", username).Msg("login failed")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.passwords.Matches(user.Password, password) {
		s.log.Warn().Str("username", username).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	attrs := domain.SessionAttributes{Username: user.Username, Role: user.Role, UserID: user.ID}
	if err := sess.Authenticate(ctx, attrs); err != nil {
		return nil, fmt.Errorf("login: store session: %w", err)
	}

	s.log.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user logged in")
	return user, nil
}

// Logout always succeeds. A store failure is logged; the client still loses
// its session cookie.
func (s *AuthService) Logout(ctx context.Context, sess ports.Session) error {
	if err := sess.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session invalidation failed")
		return nil
	}
	s.log.Info().Msg("user logged out")
	return nil
}

// Profile returns the directory record of the logged-in user.
func (s *AuthService) Profile(ctx context.Context, sess ports.Session) (*domain.User, error) {
	identity, err := s.gate.ResolveIdentity(ctx, sess)
	if err != nil {
		return nil, err
	}
	if identity.IsAnonymous() {
		return nil, domain.ErrNotLoggedIn
	}

	user, err := s.users.FindByUsername(ctx, identity.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("username", identity.Username).Msg("profile request failed: user not found")
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates an ADMIN account with the given credentials unless the
// username is already taken. An existing account keeps its role.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if exists {
		return nil
	}

	stored, err := s.passwords.Encode(password)
	if err != nil {
		return fmt.Errorf("ensure admin: encode password: %w", err)
	}
	created, err := s.users.Create(ctx, &domain.User{
		Username: username,
		Password: stored,
		Nickname: username,
		Role:     domain.RoleAdmin,
	})
	if err != nil && !errors.Is(err, domain.ErrUsernameConflict) {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created != nil {
		s.log.Info().Str("username", username).Int64("user_id", created.ID).Msg("bootstrap admin created")
	}
	return nil
}
