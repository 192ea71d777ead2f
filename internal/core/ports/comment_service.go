package ports

import (
	"context"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

type CommentService interface {
	ListByCountry(ctx context.Context, countryCode string) ([]*domain.Comment, error)
	Post(ctx context.Context, sess Session, countryCode, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}
