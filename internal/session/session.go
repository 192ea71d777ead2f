// Package session implements the per-request session handle and the
// process-local session store.
//
// A session is identified by an opaque token. The token reaches the client
// only inside a signed cookie (see CookieCodec); the attributes live in a
// ports.SessionStore, keyed by the raw token.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
)

// ContextKey is the echo context key under which the request's Handle is
// stored.
const ContextKey = "session"

// NewToken returns a fresh random session token.
func NewToken() string {
	return uuid.NewString()
}

// Handle is the ports.Session for a single request. It is not safe for
// concurrent use; each request gets its own Handle.
type Handle struct {
	store ports.SessionStore
	ttl   time.Duration

	token  string
	attrs  domain.SessionAttributes
	loaded bool

	// rotated is set when the token changed during the request and the
	// client needs the new cookie; cleared is set after Invalidate.
	rotated bool
	cleared bool
}

var _ ports.Session = (*Handle)(nil)

// NewHandle wraps an existing token. An empty token starts a new anonymous
// session that is only persisted once it is authenticated.
func NewHandle(store ports.SessionStore, token string, ttl time.Duration) *Handle {
	h := &Handle{store: store, token: token, ttl: ttl}
	if token == "" {
		h.token = NewToken()
		h.loaded = true
		h.rotated = true
	}
	return h
}

func (h *Handle) Token() string { return h.token }

// Rotated reports whether the client must be sent a new cookie.
func (h *Handle) Rotated() bool { return h.rotated }

// Cleared reports whether the session was invalidated during the request.
func (h *Handle) Cleared() bool { return h.cleared }

func (h *Handle) Attributes(ctx context.Context) (domain.SessionAttributes, error) {
	if h.loaded {
		return h.attrs, nil
	}
	attrs, err := h.store.Load(ctx, h.token)
	if err != nil {
		return domain.SessionAttributes{}, fmt.Errorf("load session: %w", err)
	}
	h.attrs = attrs
	h.loaded = true
	return attrs, nil
}

// Authenticate stores attrs under a new token and drops the old one, so a
// token seen before login never carries an authenticated session.
func (h *Handle) Authenticate(ctx context.Context, attrs domain.SessionAttributes) error {
	if !attrs.Authenticated() {
		return errors.New("authenticate session: username is required")
	}

	previous := h.token
	next := NewToken()
	if err := h.store.Save(ctx, next, attrs, h.ttl); err != nil {
		return fmt.Errorf("authenticate session: %w", err)
	}
	if previous != "" {
		// The unused new entry expires on its own.
		if err := h.store.Delete(ctx, previous); err != nil {
			return fmt.Errorf("authenticate session: drop previous token: %w", err)
		}
	}

	h.token = next
	h.attrs = attrs
	h.loaded = true
	h.rotated = true
	h.cleared = false
	return nil
}

// Invalidate forgets the session locally first, so the request continues as
// anonymous even if the store delete fails.
func (h *Handle) Invalidate(ctx context.Context) error {
	previous := h.token

	h.token = NewToken()
	h.attrs = domain.SessionAttributes{}
	h.loaded = true
	h.rotated = false
	h.cleared = true

	if err := h.store.Delete(ctx, previous); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}
