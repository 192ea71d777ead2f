package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// CommentPolicy selects how posting treats callers who are not logged in.
type CommentPolicy struct {
	// AllowAnonymous lets guests post under domain.GuestNickname. When false,
	// posting requires a login.
	AllowAnonymous bool
}

type CommentService struct {
	comments ports.CommentRepository
	users    ports.UserRepository
	gate     ports.AuthGate
	policy   CommentPolicy
	log      zerolog.Logger
	now      func() time.Time
}

func NewCommentService(
	comments ports.CommentRepository,
	users ports.UserRepository,
	gate ports.AuthGate,
	policy CommentPolicy,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		users:    users,
		gate:     gate,
		policy:   policy,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *CommentService) ListByCountry(ctx context.Context, countryCode string) ([]*domain.Comment, error) {
	comments, err := s.comments.FindByCountryCode(ctx, countryCode)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Post validates and stores a comment. The order of checks decides which
// error a caller sees when several apply:
//
//	                      allow anonymous   login required
//	blank content         1. EmptyContent   4. EmptyContent
//	not logged in         2. post as Guest  2. NotLoggedIn
//	session user deleted  3. UserNotFound   3. UserNotFound
func (s *CommentService) Post(ctx context.Context, sess ports.Session, countryCode, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if s.policy.AllowAnonymous && content == "" {
		return nil, domain.ErrEmptyContent
	}

	identity, err := s.gate.ResolveIdentity(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}

	comment := &domain.Comment{
		CountryCode: countryCode,
		Nickname:    domain.GuestNickname,
	}

	if identity.IsAnonymous() {
		if !s.policy.AllowAnonymous {
			return nil, domain.ErrNotLoggedIn
		}
	} else {
		user, err := s.users.FindByUsername(ctx, identity.Username)
		if err != nil {
			return nil, fmt.Errorf("post comment: %w", err)
		}
		userID := user.ID
		comment.Nickname = user.Nickname
		comment.UserID = &userID
	}

	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	comment.Content = content
	comment.CreatedAt = s.now()
	if err := s.comments.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Str("country_code", countryCode).Msg("failed to create comment")
		return nil, fmt.Errorf("post comment: %w", err)
	}

	s.log.Info().
		Int64("comment_id", comment.ID).
		Str("country_code", countryCode).
		Str("nickname", comment.Nickname).
		Msg("comment added")
	return comment, nil
}

// Delete removes a comment by id. Any caller may delete any comment.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	exists, err := s.comments.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if !exists {
		return domain.ErrCommentNotFound
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.log.Info().Int64("comment_id", id).Msg("comment deleted")
	return nil
}
