package store

import (
	"context"
	"errors"
	"time"

	"mina/internal/insights"
	"mina/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// EntryProvider supplies a user's entries to the insight aggregator.
type EntryProvider interface {
	Entries(ctx context.Context, userID int) ([]models.JournalEntry, error)
}

// EntryFilter narrows ListEntries. Zero values mean "no bound".
type EntryFilter struct {
	Start insights.Day
	End   insights.Day
	Loc   *time.Location
	Limit int
}

// NewEntry is the input for creating or importing an entry.
type NewEntry struct {
	Body      string
	Mood      insights.MoodLevel
	WordCount int
	Tags      []string
	CreatedAt time.Time
}

type JournalStore interface {
	EntryProvider
	CreateEntry(ctx context.Context, userID int, in NewEntry) (models.JournalEntry, error)
	ListEntries(ctx context.Context, userID int, f EntryFilter) ([]models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID int, id string) error
	ImportEntries(ctx context.Context, userID int, in []NewEntry) (int, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, timeZone string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id int) (models.User, error)
}

// Store is everything the HTTP layer needs.
type Store interface {
	JournalStore
	UserStore
	Ping(ctx context.Context) error
}

// Match reports whether an entry falls inside the filter's day bounds.
func (f EntryFilter) Match(createdAt time.Time) bool {
	d := insights.DayOf(createdAt, f.Loc)
	if !f.Start.IsZero() && d.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && d.After(f.End) {
		return false
	}
	return true
}
