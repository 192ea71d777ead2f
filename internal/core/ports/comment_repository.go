package ports

import (
	"context"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

// CommentRepository is the comment ledger.
type CommentRepository interface {
	// FindByCountryCode returns comments for an exact country code in the
	// order they were stored.
	FindByCountryCode(ctx context.Context, countryCode string) ([]*domain.Comment, error)
	// Create assigns the comment's ID.
	Create(ctx context.Context, c *domain.Comment) error
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
