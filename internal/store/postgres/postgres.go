package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jmoiron/sqlx"

	"mina/internal/insights"
	"mina/internal/models"
	"mina/internal/services"
	"mina/internal/store"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Store persists users and entries in Postgres. Entry bodies and emails go
// through the encryption service before they reach the database.
type Store struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func New(db *sqlx.DB, encSvc *services.EncryptionService) *Store {
	if encSvc == nil {
		encSvc = &services.EncryptionService{}
	}
	return &Store{db: db, encSvc: encSvc}
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

const userColumns = `id, email, email_blind_index, password_hash, display_name, time_zone, created_at`

func (s *Store) CreateUser(ctx context.Context, email, passwordHash, timeZone string) (models.User, error) {
	u := models.User{Email: email}
	if err := s.encSvc.EncryptUser(&u); err != nil {
		return models.User{}, fmt.Errorf("encrypt user: %w", err)
	}
	var created models.User
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO users (email, email_blind_index, password_hash, time_zone) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		u.Email, u.EmailBlindIndex, passwordHash, timeZone).StructScan(&created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, store.ErrConflict
		}
		return models.User{}, err
	}
	return s.decryptUser(created)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email_blind_index=$1`, s.encSvc.EmailIndex(email))
	if err != nil {
		return models.User{}, notFound(err)
	}
	return s.decryptUser(u)
}

func (s *Store) UserByID(ctx context.Context, id int) (models.User, error) {
	var u models.User
	if err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id=$1`, id); err != nil {
		return models.User{}, notFound(err)
	}
	return s.decryptUser(u)
}

func (s *Store) decryptUser(u models.User) (models.User, error) {
	if err := s.encSvc.DecryptUser(&u); err != nil {
		return models.User{}, fmt.Errorf("decrypt user: %w", err)
	}
	return u, nil
}

func (s *Store) Entries(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	return s.ListEntries(ctx, userID, store.EntryFilter{})
}

func (s *Store) ListEntries(ctx context.Context, userID int, f store.EntryFilter) ([]models.JournalEntry, error) {
	where := "WHERE user_id=$1"
	args := []any{userID}
	if !f.Start.IsZero() {
		args = append(args, f.Start.Time(f.Loc))
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if !f.End.IsZero() {
		args = append(args, f.End.AddDays(1).Time(f.Loc))
		where += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	query := `SELECT id::text, user_id, body, mood, word_count, tags, created_at, updated_at FROM journal_entries ` +
		where + ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// pgtype.Map caches scan plans and is not safe to share across goroutines.
	types := pgtype.NewMap()
	var out []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var mood sql.NullInt16
		if err := rows.Scan(&e.ID, &e.UserID, &e.Body, &mood, &e.WordCount, types.SQLScanner(&e.Tags), &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if mood.Valid {
			e.Mood = insights.MoodLevel(mood.Int16)
		}
		if err := s.encSvc.DecryptEntry(&e); err != nil {
			return nil, fmt.Errorf("decrypt entry %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const insertEntry = `INSERT INTO journal_entries (id, user_id, body, mood, word_count, tags, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (s *Store) CreateEntry(ctx context.Context, userID int, in store.NewEntry) (models.JournalEntry, error) {
	e, sealed, err := s.prepare(userID, in)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if _, err := s.db.ExecContext(ctx, insertEntry, entryArgs(sealed)...); err != nil {
		return models.JournalEntry{}, foreignKey(err)
	}
	return e, nil
}

func (s *Store) ImportEntries(ctx context.Context, userID int, in []store.NewEntry) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, n := range in {
		_, sealed, err := s.prepare(userID, n)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, insertEntry, entryArgs(sealed)...); err != nil {
			return 0, foreignKey(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(in), nil
}

func (s *Store) DeleteEntry(ctx context.Context, userID int, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE user_id=$1 AND id=$2`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// prepare returns the plain entry for the caller and a sealed copy for the row.
func (s *Store) prepare(userID int, in store.NewEntry) (models.JournalEntry, models.JournalEntry, error) {
	now := time.Now().UTC()
	created := in.CreatedAt
	if created.IsZero() {
		created = now
	}
	tags := append([]string{}, in.Tags...)
	e := models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Body:      in.Body,
		Mood:      in.Mood,
		WordCount: in.WordCount,
		Tags:      tags,
		CreatedAt: created,
		UpdatedAt: now,
	}
	sealed := e
	if err := s.encSvc.EncryptEntry(&sealed); err != nil {
		return models.JournalEntry{}, models.JournalEntry{}, fmt.Errorf("encrypt entry: %w", err)
	}
	return e, sealed, nil
}

func entryArgs(e models.JournalEntry) []any {
	var mood any
	if e.Mood.Valid() {
		mood = int16(e.Mood)
	}
	return []any{e.ID, e.UserID, e.Body, mood, e.WordCount, e.Tags, e.CreatedAt, e.UpdatedAt}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func foreignKey(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return store.ErrNotFound
	}
	return err
}
