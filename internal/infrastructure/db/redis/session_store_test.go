package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis integration test")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	token := uuid.NewString()
	t.Cleanup(func() { _ = store.Delete(ctx, token) })

	attrs, err := store.Load(ctx, token)
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())

	want := domain.SessionAttributes{Username: "alice", Role: domain.RoleUser, UserID: 42}
	require.NoError(t, store.Save(ctx, token, want, time.Minute))

	got, err := store.Load(ctx, token)
	require.NoError(t, err)
	require.Equal(t, want, got)

	ttl, err := store.client.TTL(ctx, store.key(token)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Touch(ctx, token, 10*time.Minute))
	ttl, err = store.client.TTL(ctx, store.key(token)).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Minute)

	require.NoError(t, store.Delete(ctx, token))
	got, err = store.Load(ctx, token)
	require.NoError(t, err)
	require.False(t, got.Authenticated())
}

func TestSessionStore_SaveReplacesAllFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	token := uuid.NewString()
	t.Cleanup(func() { _ = store.Delete(ctx, token) })

	require.NoError(t, store.Save(ctx, token, domain.SessionAttributes{Username: "admin", Role: domain.RoleAdmin, UserID: 1}, time.Minute))
	require.NoError(t, store.Save(ctx, token, domain.SessionAttributes{Username: "bob", Role: domain.RoleUser, UserID: 2}, time.Minute))

	got, err := store.Load(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.SessionAttributes{Username: "bob", Role: domain.RoleUser, UserID: 2}, got)
}

func TestSessionStore_TouchMissingKey(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Touch(context.Background(), uuid.NewString(), time.Minute))
}
