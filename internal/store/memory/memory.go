package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mina/internal/models"
	"mina/internal/store"
)

// Store keeps users and entries in process memory. It backs local runs
// without DATABASE_URL and the handler tests.
type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	nextID  int
	users   map[int]models.User
	byEmail map[string]int
	entries map[int][]models.JournalEntry
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		nextID:  1,
		users:   make(map[int]models.User),
		byEmail: make(map[string]int),
		entries: make(map[int][]models.JournalEntry),
	}
}

// WithClock overrides the clock used to stamp created entries.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) CreateUser(_ context.Context, email, passwordHash, timeZone string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.byEmail[key]; ok {
		return models.User{}, store.ErrConflict
	}
	u := models.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		TimeZone:     timeZone,
		CreatedAt:    s.now(),
	}
	s.nextID++
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByID(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

// Entries returns every entry of the user, newest first.
func (s *Store) Entries(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	return s.ListEntries(ctx, userID, store.EntryFilter{})
}

func (s *Store) ListEntries(_ context.Context, userID int, f store.EntryFilter) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.JournalEntry, 0, len(s.entries[userID]))
	for _, e := range s.entries[userID] {
		if f.Match(e.CreatedAt) {
			out = append(out, clone(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) CreateEntry(_ context.Context, userID int, in store.NewEntry) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return models.JournalEntry{}, store.ErrNotFound
	}
	e := s.build(userID, in)
	s.entries[userID] = append(s.entries[userID], e)
	return clone(e), nil
}

func (s *Store) ImportEntries(_ context.Context, userID int, in []store.NewEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return 0, store.ErrNotFound
	}
	for _, n := range in {
		s.entries[userID] = append(s.entries[userID], s.build(userID, n))
	}
	return len(in), nil
}

func (s *Store) DeleteEntry(_ context.Context, userID int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[userID]
	for i, e := range list {
		if e.ID == id {
			s.entries[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) build(userID int, in store.NewEntry) models.JournalEntry {
	now := s.now()
	created := in.CreatedAt
	if created.IsZero() {
		created = now
	}
	return models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Body:      in.Body,
		Mood:      in.Mood,
		WordCount: in.WordCount,
		Tags:      append([]string(nil), in.Tags...),
		CreatedAt: created,
		UpdatedAt: now,
	}
}

func clone(e models.JournalEntry) models.JournalEntry {
	e.Tags = append([]string(nil), e.Tags...)
	return e
}
