package models

import (
	"time"

	"mina/internal/insights"
)

type User struct {
	ID              int       `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`             // Encrypted in DB when keys are configured
	EmailBlindIndex string    `db:"email_blind_index" json:"-"`     // HMAC hash for lookups
	PasswordHash    string    `db:"password_hash" json:"-"`
	DisplayName     *string   `db:"display_name" json:"display_name,omitempty"`
	TimeZone        string    `db:"time_zone" json:"time_zone"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// JournalEntry is a single written entry. Mood is zero when the writer skipped it.
type JournalEntry struct {
	ID        string             `db:"id" json:"id"`
	UserID    int                `db:"user_id" json:"user_id"`
	Body      string             `db:"body" json:"body,omitempty"` // Encrypted in DB when keys are configured
	Mood      insights.MoodLevel `db:"mood" json:"mood"`
	WordCount int                `db:"word_count" json:"word_count"`
	Tags      []string           `db:"tags" json:"tags"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// Record projects the entry onto what the insight aggregator reads.
func (e JournalEntry) Record() insights.Record {
	return insights.Record{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Mood:      e.Mood,
		WordCount: e.WordCount,
		Tags:      append([]string(nil), e.Tags...),
	}
}

func Records(entries []JournalEntry) []insights.Record {
	out := make([]insights.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record())
	}
	return out
}

// DailyStreakMetric is the streak length ending at Date.
type DailyStreakMetric struct {
	Date   insights.Day `json:"date"`
	Streak int          `json:"streak"`
}
