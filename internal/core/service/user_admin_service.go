package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// UserAdminService implements user management for admins. The admin check
// runs before any lookup so a non-admin cannot probe which ids exist.
type UserAdminService struct {
	users ports.UserRepository
	gate  ports.AuthGate
	log   zerolog.Logger
}

func NewUserAdminService(users ports.UserRepository, gate ports.AuthGate, log zerolog.Logger) *UserAdminService {
	return &UserAdminService{users: users, gate: gate, log: log}
}

func (s *UserAdminService) requireAdmin(ctx context.Context, sess ports.Session, op string) error {
	if !s.gate.IsAdmin(ctx, sess) {
		s.log.Warn().Str("operation", op).Msg("access denied: user is not an admin")
		return domain.ErrForbidden
	}
	return nil
}

func (s *UserAdminService) ListUsers(ctx context.Context, sess ports.Session) ([]*domain.User, error) {
	if err := s.requireAdmin(ctx, sess, "list_users"); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces the nickname of user id. Role, username and password
// are left untouched.
func (s *UserAdminService) UpdateUser(ctx context.Context, sess ports.Session, id int64, nickname string) error {
	if err := s.requireAdmin(ctx, sess, "update_user"); err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Int64("user_id", id).Msg("update failed: user not found")
		}
		return err
	}

	if strings.TrimSpace(nickname) == "" {
		return domain.ErrEmptyNickname
	}

	if err := s.users.UpdateNickname(ctx, id, nickname); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.log.Info().Int64("user_id", id).Msg("user updated")
	return nil
}

// DeleteUser removes user id unless it is the caller's own account as
// recorded in their session. Other admins may be deleted.
func (s *UserAdminService) DeleteUser(ctx context.Context, sess ports.Session, id int64) error {
	if err := s.requireAdmin(ctx, sess, "delete_user"); err != nil {
		return err
	}

	caller, err := s.gate.ResolveIdentity(ctx, sess)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if caller.UserID == id {
		s.log.Warn().Int64("user_id", id).Msg("admin tried to delete their own account")
		return domain.ErrSelfDeletion
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Int64("user_id", id).Str("deleted_by", caller.Username).Msg("user deleted")
	return nil
}
