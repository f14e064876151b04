package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mina/internal/insights"
	"mina/internal/models"
	"mina/internal/store"
)

var _ store.Store = (*Store)(nil)

func newUser(t *testing.T, s *Store) models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), "writer@example.com", "hash", "UTC")
	require.NoError(t, err)
	return u
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := newUser(t, s)

	_, err := s.CreateUser(ctx, "WRITER@example.com", "hash", "UTC")
	assert.ErrorIs(t, err, store.ErrConflict)

	got, err := s.UserByEmail(ctx, "Writer@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.UserByID(ctx, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_EntriesNewestFirstAndFiltered(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := newUser(t, s)

	for _, d := range []int{3, 1, 2} {
		_, err := s.CreateEntry(ctx, u.ID, store.NewEntry{
			WordCount: d,
			Tags:      []string{"x"},
			CreatedAt: time.Date(2026, 2, d, 9, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	all, err := s.Entries(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{all[0].WordCount, all[1].WordCount, all[2].WordCount})

	filtered, err := s.ListEntries(ctx, u.ID, store.EntryFilter{
		Start: insights.NewDay(2026, time.February, 2),
		End:   insights.NewDay(2026, time.February, 3),
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].WordCount)

	// returned entries are copies
	all[0].Tags[0] = "mutated"
	again, _ := s.Entries(ctx, u.ID)
	assert.Equal(t, "x", again[0].Tags[0])
}

func TestStore_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := newUser(t, s)
	e, err := s.CreateEntry(ctx, u.ID, store.NewEntry{WordCount: 5})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(ctx, u.ID, e.ID))
	assert.ErrorIs(t, s.DeleteEntry(ctx, u.ID, e.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEntry(ctx, u.ID+1, e.ID), store.ErrNotFound)
}

func TestStore_CreateEntryUnknownUser(t *testing.T) {
	_, err := NewStore().CreateEntry(context.Background(), 7, store.NewEntry{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_CreateEntryDefaultsTimestamp(t *testing.T) {
	fixed := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)
	s := NewStore().WithClock(func() time.Time { return fixed })
	u := newUser(t, s)

	e, err := s.CreateEntry(context.Background(), u.ID, store.NewEntry{WordCount: 1})
	require.NoError(t, err)
	assert.Equal(t, fixed, e.CreatedAt)
	assert.NotEmpty(t, e.ID)
}

func TestSeedEntries_KeepsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	// 2026-03-08 is the spring-forward day in New York, offset 2 from today
	today := insights.NewDay(2026, time.March, 10)

	var found bool
	for _, e := range SeedEntries(today, loc) {
		local := e.CreatedAt.In(loc)
		if local.Month() == time.March && local.Day() == 8 {
			found = true
			assert.Equal(t, 18, local.Hour())
			assert.Equal(t, 12, local.Minute())
		}
	}
	assert.True(t, found)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := newUser(t, s)
	today := insights.NewDay(2026, time.February, 12)

	n, err := s.Seed(ctx, u.ID, today, time.UTC)
	require.NoError(t, err)
	entries, err := s.Entries(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, entries, n)

	snap := insights.Aggregate(models.Records(entries), insights.PeriodMonth, today)
	// offset 0 carries two entries and offset 1 none, so the streak is one day
	assert.Equal(t, 1, snap.Streak.CurrentStreak)
	assert.Len(t, snap.WritingActivity, 30)
	assert.Equal(t, 2, snap.WritingActivity[29].EntryCount)
	assert.Zero(t, snap.WritingActivity[28].EntryCount)
	for _, e := range entries {
		assert.True(t, e.Mood.Valid())
		assert.Len(t, e.Tags, 2)
		assert.GreaterOrEqual(t, e.WordCount, 140)
	}
}
