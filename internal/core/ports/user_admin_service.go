package ports

import (
	"context"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

// UserAdminService exposes the admin-only user management operations. Every
// method rejects non-admin sessions with domain.ErrForbidden before doing
// anything else.
type UserAdminService interface {
	ListUsers(ctx context.Context, sess Session) ([]*domain.User, error)
	UpdateUser(ctx context.Context, sess Session, id int64, nickname string) error
	DeleteUser(ctx context.Context, sess Session, id int64) error
}
