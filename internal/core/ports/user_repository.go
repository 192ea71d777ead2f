package ports

import (
	"context"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

// UserRepository is the user directory.
// Lookups return domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Create assigns the user's ID. It returns domain.ErrUsernameConflict when
	// the username is already taken, even if a concurrent insert won the race.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateNickname changes only the nickname of an existing user.
	UpdateNickname(ctx context.Context, id int64, nickname string) error
	// Delete removes the user. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id int64) error
}
