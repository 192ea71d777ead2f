package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newClockedStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 7, 26, 12, 0, 0, 0, time.UTC)}
	s := NewMemoryStore()
	s.now = clock.now
	return s, clock
}

func TestMemoryStore_Expiry(t *testing.T) {
	s, clock := newClockedStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok", alice, time.Minute))

	clock.t = clock.t.Add(59 * time.Second)
	attrs, err := s.Load(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, alice, attrs)

	clock.t = clock.t.Add(time.Second)
	attrs, err = s.Load(ctx, "tok")
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())
}

func TestMemoryStore_TouchExtends(t *testing.T) {
	s, clock := newClockedStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok", alice, time.Minute))
	clock.t = clock.t.Add(50 * time.Second)
	require.NoError(t, s.Touch(ctx, "tok", time.Minute))

	clock.t = clock.t.Add(50 * time.Second)
	attrs, err := s.Load(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, alice, attrs)

	// Touching an unknown token does not create it.
	require.NoError(t, s.Touch(ctx, "missing", time.Minute))
	attrs, err = s.Load(ctx, "missing")
	require.NoError(t, err)
	require.False(t, attrs.Authenticated())
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	s, clock := newClockedStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok", alice, 0))
	clock.t = clock.t.Add(24 * time.Hour)

	attrs, err := s.Load(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, alice, attrs)
}

func TestMemoryStore_Sweep(t *testing.T) {
	s, clock := newClockedStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "short", alice, time.Minute))
	require.NoError(t, s.Save(ctx, "long", alice, time.Hour))

	clock.t = clock.t.Add(2 * time.Minute)
	require.Equal(t, 1, s.Sweep())
	require.Equal(t, 0, s.Sweep())

	attrs, err := s.Load(ctx, "long")
	require.NoError(t, err)
	require.True(t, attrs.Authenticated())
}

func TestMemoryStore_RunSweeperStopsOnCancel(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
