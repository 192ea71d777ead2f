package mongo

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/olympicapp/country-comments/internal/core/domain"
)

func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping mongo integration test")
	}
	ctx := context.Background()
	name := "country_comments_test_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")

	client, db, err := Connect(ctx, Config{URI: uri, Database: name})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice, err := repo.Create(ctx, &domain.User{Username: "alice", Password: "pw", Nickname: "Ali", Role: domain.RoleUser})
	require.NoError(t, err)
	require.Equal(t, int64(1), alice.ID)

	bob, err := repo.Create(ctx, &domain.User{Username: "bob", Password: "pw", Nickname: "Bobby", Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, int64(2), bob.ID)

	_, err = repo.Create(ctx, &domain.User{Username: "alice", Password: "x"})
	require.True(t, errors.Is(err, domain.ErrUsernameConflict), "got %v", err)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, exists)

	got, err := repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, bob, got)

	_, err = repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.UpdateNickname(ctx, alice.ID, "Alice"))
	require.ErrorIs(t, repo.UpdateNickname(ctx, 999, "x"), domain.ErrUserNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Alice", list[0].Nickname)
	require.Equal(t, "bob", list[1].Username)

	require.NoError(t, repo.Delete(ctx, bob.ID))
	require.NoError(t, repo.Delete(ctx, bob.ID))
	_, err = repo.FindByID(ctx, bob.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCommentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	userID := int64(7)
	at := time.Date(2024, 7, 26, 12, 0, 0, 0, time.UTC)

	first := &domain.Comment{CountryCode: "KR", Nickname: "Guest", Content: "one", CreatedAt: at}
	second := &domain.Comment{CountryCode: "KR", Nickname: "Ali", Content: "two", UserID: &userID, CreatedAt: at}
	other := &domain.Comment{CountryCode: "JP", Nickname: "Guest", Content: "three", CreatedAt: at}
	for _, c := range []*domain.Comment{first, second, other} {
		require.NoError(t, repo.Create(ctx, c))
		require.NotZero(t, c.ID)
	}

	kr, err := repo.FindByCountryCode(ctx, "KR")
	require.NoError(t, err)
	require.Len(t, kr, 2)
	require.Equal(t, "one", kr[0].Content)
	require.Nil(t, kr[0].UserID)
	require.Equal(t, userID, *kr[1].UserID)
	require.True(t, kr[1].CreatedAt.Equal(at))

	none, err := repo.FindByCountryCode(ctx, "BR")
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)

	exists, err := repo.Exists(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, repo.Delete(ctx, first.ID))
	exists, err = repo.Exists(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, exists)
}
