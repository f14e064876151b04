package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mina/internal/db"
	"mina/internal/insights"
	"mina/internal/services"
	"mina/internal/store"
)

var _ store.Store = (*Store)(nil)

// Runs only when MINA_TEST_DATABASE_URL points at a disposable database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("MINA_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MINA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	conn, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.RunMigrations(ctx, conn))
	_, err = conn.ExecContext(ctx, `TRUNCATE journal_entries, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	enc, err := services.NewEncryptionService(strings.Repeat("11", 32), strings.Repeat("22", 32))
	require.NoError(t, err)
	return New(conn, enc)
}

func TestPostgres_UsersAndEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "writer@example.com", "hash", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "writer@example.com", u.Email)

	_, err = s.CreateUser(ctx, "Writer@example.com", "hash", "UTC")
	assert.ErrorIs(t, err, store.ErrConflict)

	byEmail, err := s.UserByEmail(ctx, "writer@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	created := time.Date(2026, 2, 12, 9, 30, 0, 0, time.UTC)
	e, err := s.CreateEntry(ctx, u.ID, store.NewEntry{
		Body:      "long walk by the river",
		Mood:      insights.MoodGreat,
		WordCount: 5,
		Tags:      []string{"Health", "Gratitude"},
		CreatedAt: created,
	})
	require.NoError(t, err)

	n, err := s.ImportEntries(ctx, u.ID, []store.NewEntry{
		{WordCount: 3, CreatedAt: created.AddDate(0, 0, -1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := s.Entries(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.Equal(t, "long walk by the river", entries[0].Body)
	assert.Equal(t, insights.MoodGreat, entries[0].Mood)
	assert.Equal(t, []string{"Health", "Gratitude"}, entries[0].Tags)
	assert.False(t, entries[1].Mood.Valid())
	assert.Empty(t, entries[1].Tags)

	one, err := s.ListEntries(ctx, u.ID, store.EntryFilter{Start: insights.NewDay(2026, time.February, 12)})
	require.NoError(t, err)
	assert.Len(t, one, 1)

	require.NoError(t, s.DeleteEntry(ctx, u.ID, e.ID))
	assert.ErrorIs(t, s.DeleteEntry(ctx, u.ID, e.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEntry(ctx, u.ID, "not-a-uuid"), store.ErrNotFound)
}
