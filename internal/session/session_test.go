package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

var alice = domain.SessionAttributes{Username: "alice", Role: domain.RoleUser, UserID: 2}

// failingStore wraps a MemoryStore and fails the selected operations.
type failingStore struct {
	*MemoryStore
	failSave   bool
	failDelete bool
}

func (s *failingStore) Save(ctx context.Context, token string, attrs domain.SessionAttributes, ttl time.Duration) error {
	if s.failSave {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Save(ctx, token, attrs, ttl)
}

func (s *failingStore) Delete(ctx context.Context, token string) error {
	if s.failDelete {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Delete(ctx, token)
}

func TestHandle_NewSessionIsAnonymous(t *testing.T) {
	h := NewHandle(NewMemoryStore(), "", time.Minute)

	require.NotEmpty(t, h.Token())
	require.True(t, h.Rotated())
	require.False(t, h.Cleared())

	attrs, err := h.Attributes(context.Background())
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())
}

func TestHandle_AuthenticateRotatesToken(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	old := NewToken()
	require.NoError(t, store.Save(ctx, old, domain.SessionAttributes{Username: "bob", Role: domain.RoleAdmin, UserID: 1}, time.Minute))

	h := NewHandle(store, old, time.Minute)
	require.False(t, h.Rotated())
	require.NoError(t, h.Authenticate(ctx, alice))

	require.NotEqual(t, old, h.Token())
	require.True(t, h.Rotated())

	stored, err := store.Load(ctx, h.Token())
	require.NoError(t, err)
	require.Equal(t, alice, stored)

	previous, err := store.Load(ctx, old)
	require.NoError(t, err)
	require.False(t, previous.Authenticated(), "old token must not survive login")

	attrs, err := h.Attributes(ctx)
	require.NoError(t, err)
	require.Equal(t, alice, attrs)
}

func TestHandle_AuthenticateRequiresUsername(t *testing.T) {
	h := NewHandle(NewMemoryStore(), "", time.Minute)
	require.Error(t, h.Authenticate(context.Background(), domain.SessionAttributes{Role: domain.RoleAdmin, UserID: 1}))
}

func TestHandle_AuthenticateStoreFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failSave: true}
	h := NewHandle(store, "", time.Minute)
	token := h.Token()

	require.Error(t, h.Authenticate(context.Background(), alice))
	require.Equal(t, token, h.Token())

	attrs, err := h.Attributes(context.Background())
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())
}

func TestHandle_AuthenticateKeepsTokenWhenOldOneCannotBeDropped(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failDelete: true}
	ctx := context.Background()
	old := NewToken()
	bob := domain.SessionAttributes{Username: "bob", Role: domain.RoleUser, UserID: 3}
	require.NoError(t, store.Save(ctx, old, bob, time.Minute))

	h := NewHandle(store, old, time.Minute)
	require.Error(t, h.Authenticate(ctx, alice))

	require.Equal(t, old, h.Token())
	require.False(t, h.Rotated())

	attrs, err := h.Attributes(ctx)
	require.NoError(t, err)
	require.Equal(t, bob, attrs)
}

func TestHandle_Invalidate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	token := NewToken()
	require.NoError(t, store.Save(ctx, token, alice, time.Minute))

	h := NewHandle(store, token, time.Minute)
	attrs, err := h.Attributes(ctx)
	require.NoError(t, err)
	require.Equal(t, alice, attrs)

	require.NoError(t, h.Invalidate(ctx))
	require.True(t, h.Cleared())
	require.NotEqual(t, token, h.Token())

	attrs, err = h.Attributes(ctx)
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())

	stored, err := store.Load(ctx, token)
	require.NoError(t, err)
	require.False(t, stored.Authenticated())

	// Invalidating twice is fine.
	require.NoError(t, h.Invalidate(ctx))
}

func TestHandle_InvalidateStoreFailureStillClearsLocally(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failDelete: true}
	ctx := context.Background()
	token := NewToken()
	require.NoError(t, store.Save(ctx, token, alice, time.Minute))

	h := NewHandle(store, token, time.Minute)
	require.Error(t, h.Invalidate(ctx))
	require.True(t, h.Cleared())

	attrs, err := h.Attributes(ctx)
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())
}

func TestHandle_LoginAfterLogout(t *testing.T) {
	h := NewHandle(NewMemoryStore(), "", time.Minute)
	ctx := context.Background()

	require.NoError(t, h.Invalidate(ctx))
	require.True(t, h.Cleared())
	require.NoError(t, h.Authenticate(ctx, alice))
	require.False(t, h.Cleared())
	require.True(t, h.Rotated())
}
