package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

const (
	fieldUsername = "username"
	fieldRole     = "role"
	fieldUserID   = "user_id"
)

// SessionStore keeps session attributes in a Redis hash per token.
// Key format: session:<token>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Load returns the attributes for token. A missing key, or a hash without a
// username, reads as an anonymous session.
func (s *SessionStore) Load(ctx context.Context, token string) (domain.SessionAttributes, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return domain.SessionAttributes{}, fmt.Errorf("session load: %w", err)
	}
	if fields[fieldUsername] == "" {
		return domain.SessionAttributes{}, nil
	}

	userID, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil {
		return domain.SessionAttributes{}, fmt.Errorf("session load: malformed user id: %w", err)
	}
	return domain.SessionAttributes{
		Username: fields[fieldUsername],
		Role:     fields[fieldRole],
		UserID:   userID,
	}, nil
}

// Save replaces the attributes for token in a single MULTI/EXEC, so readers
// never observe a partially written session.
func (s *SessionStore) Save(ctx context.Context, token string, attrs domain.SessionAttributes, ttl time.Duration) error {
	key := s.key(token)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldUsername, attrs.Username,
			fieldRole, attrs.Role,
			fieldUserID, strconv.FormatInt(attrs.UserID, 10),
		)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Touch pushes the expiry of an existing session forward.
func (s *SessionStore) Touch(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Expire(ctx, s.key(token), ttl).Err(); err != nil {
		return fmt.Errorf("session touch: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
