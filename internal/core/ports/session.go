package ports

import (
	"context"
	"time"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

// Session is the per-request handle on the caller's session. It is the only
// way the core reads or changes login state.
type Session interface {
	// Attributes returns the stored login attributes; the zero value means
	// the session is anonymous.
	Attributes(ctx context.Context) (domain.SessionAttributes, error)
	// Authenticate stores all login attributes in one write.
	Authenticate(ctx context.Context, attrs domain.SessionAttributes) error
	// Invalidate clears the session. Invalidating an anonymous or already
	// invalidated session succeeds.
	Invalidate(ctx context.Context) error
}

// SessionStore persists session attributes keyed by an opaque token.
// Load of an unknown or expired token returns zero attributes and no error.
type SessionStore interface {
	Load(ctx context.Context, token string) (domain.SessionAttributes, error)
	Save(ctx context.Context, token string, attrs domain.SessionAttributes, ttl time.Duration) error
	Touch(ctx context.Context, token string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}
