package repository

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

// newTestDB, temp dizinde gerçek bir SQLite veritabanı açar ve
// embedded migration'ları çalıştırır. Test bitince dosya silinir.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	repo := NewSQLiteUserRepo(db.Conn)
	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Language:     "en",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createTestStream(t *testing.T, db *database.DB, name string) *models.Stream {
	t.Helper()

	repo := NewSQLiteStreamRepo(db.Conn)
	stream := &models.Stream{Name: name}
	require.NoError(t, repo.Create(context.Background(), stream))
	return stream
}

func TestSQLiteTopicMuteRepo(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteTopicMuteRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, db, "hamlet")
	stream := createTestStream(t, db, "design")
	dateMuted := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("create and exists", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, user.ID, stream.ID, "weather", dateMuted))

		muted, err := repo.Exists(ctx, user.ID, stream.ID, "weather")
		require.NoError(t, err)
		assert.True(t, muted)
	})

	t.Run("topic comparison is case-insensitive", func(t *testing.T) {
		muted, err := repo.Exists(ctx, user.ID, stream.ID, "WEATHER")
		require.NoError(t, err)
		assert.True(t, muted)

		// UNIQUE constraint case farkına rağmen yakalar
		err = repo.Create(ctx, user.ID, stream.ID, "Weather", dateMuted)
		assert.ErrorIs(t, err, pkg.ErrTopicAlreadyMuted)
	})

	t.Run("duplicate create returns conflict", func(t *testing.T) {
		err := repo.Create(ctx, user.ID, stream.ID, "weather", dateMuted)
		assert.ErrorIs(t, err, pkg.ErrTopicAlreadyMuted)
	})

	t.Run("list returns stored timestamp", func(t *testing.T) {
		mutes, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, mutes, 1)
		assert.Equal(t, stream.ID, mutes[0].StreamID)
		assert.Equal(t, "weather", mutes[0].TopicName)
		assert.True(t, mutes[0].DateMuted.Equal(dateMuted))
	})

	t.Run("same topic in another stream is independent", func(t *testing.T) {
		other := createTestStream(t, db, "social")
		require.NoError(t, repo.Create(ctx, user.ID, other.ID, "weather", dateMuted))

		mutes, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, mutes, 2)
	})

	t.Run("delete removes record", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, user.ID, stream.ID, "weather"))

		muted, err := repo.Exists(ctx, user.ID, stream.ID, "weather")
		require.NoError(t, err)
		assert.False(t, muted)
	})

	t.Run("delete of missing record returns not muted", func(t *testing.T) {
		err := repo.Delete(ctx, user.ID, stream.ID, "weather")
		assert.ErrorIs(t, err, pkg.ErrTopicNotMuted)
	})
}

func TestSQLiteUserMuteRepo(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserMuteRepo(db.Conn)
	ctx := context.Background()

	hamlet := createTestUser(t, db, "hamlet")
	othello := createTestUser(t, db, "othello")
	dateMuted := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("create and exists", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, hamlet.ID, othello.ID, dateMuted))

		muted, err := repo.Exists(ctx, hamlet.ID, othello.ID)
		require.NoError(t, err)
		assert.True(t, muted)
	})

	t.Run("mute is one-directional", func(t *testing.T) {
		muted, err := repo.Exists(ctx, othello.ID, hamlet.ID)
		require.NoError(t, err)
		assert.False(t, muted)
	})

	t.Run("duplicate create returns conflict", func(t *testing.T) {
		err := repo.Create(ctx, hamlet.ID, othello.ID, dateMuted)
		assert.ErrorIs(t, err, pkg.ErrUserAlreadyMuted)
	})

	t.Run("list by user", func(t *testing.T) {
		mutes, err := repo.ListByUser(ctx, hamlet.ID)
		require.NoError(t, err)
		require.Len(t, mutes, 1)
		assert.Equal(t, othello.ID, mutes[0].MutedUserID)
		assert.True(t, mutes[0].DateMuted.Equal(dateMuted))
	})

	t.Run("delete and delete again", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, hamlet.ID, othello.ID))

		err := repo.Delete(ctx, hamlet.ID, othello.ID)
		assert.ErrorIs(t, err, pkg.ErrUserNotMuted)
	})
}

func TestSQLiteStreamRepoVisibilityQueries(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteStreamRepo(db.Conn)
	ctx := context.Background()

	user := createTestUser(t, db, "hamlet")
	public := createTestStream(t, db, "design")

	private := &models.Stream{Name: "secret", IsPrivate: true}
	require.NoError(t, repo.Create(ctx, private))

	t.Run("list hides unsubscribed private streams", func(t *testing.T) {
		streams, err := repo.ListForUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, streams, 1)
		assert.Equal(t, public.ID, streams[0].ID)
	})

	t.Run("subscription makes private stream visible", func(t *testing.T) {
		require.NoError(t, repo.Subscribe(ctx, user.ID, private.ID))

		subscribed, err := repo.IsSubscribed(ctx, user.ID, private.ID)
		require.NoError(t, err)
		assert.True(t, subscribed)

		streams, err := repo.ListForUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, streams, 2)
	})

	t.Run("subscribe is idempotent", func(t *testing.T) {
		assert.NoError(t, repo.Subscribe(ctx, user.ID, private.ID))
	})

	t.Run("get by name", func(t *testing.T) {
		stream, err := repo.GetByName(ctx, "design")
		require.NoError(t, err)
		assert.Equal(t, public.ID, stream.ID)

		_, err = repo.GetByName(ctx, "missing")
		assert.ErrorIs(t, err, pkg.ErrNotFound)
	})
}
