package handlers

import (
	"time"

	"mina/internal/insights"
	"mina/internal/models"
)

// UserDTO keeps timestamps as RFC 3339 strings.
type UserDTO struct {
	ID          int     `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name,omitempty"`
	TimeZone    string  `json:"time_zone"`
	CreatedAt   string  `json:"created_at"`
}

func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		TimeZone:    u.TimeZone,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// EntryDTO adds the entry's local calendar date for clients that group by day.
type EntryDTO struct {
	ID        string             `json:"id"`
	LocalDate insights.Day       `json:"local_date"`
	Body      string             `json:"body,omitempty"`
	Mood      insights.MoodLevel `json:"mood"`
	WordCount int                `json:"word_count"`
	Tags      []string           `json:"tags"`
	CreatedAt string             `json:"created_at"`
}

func ToEntryDTO(e models.JournalEntry, loc *time.Location) EntryDTO {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EntryDTO{
		ID:        e.ID,
		LocalDate: insights.DayOf(e.CreatedAt, loc),
		Body:      e.Body,
		Mood:      e.Mood,
		WordCount: e.WordCount,
		Tags:      tags,
		CreatedAt: e.CreatedAt.In(loc).Format(time.RFC3339),
	}
}

func ToEntryDTOs(entries []models.JournalEntry, loc *time.Location) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryDTO(e, loc))
	}
	return out
}

// insightResponse is a snapshot plus the trend readings derived from it.
type insightResponse struct {
	insights.Snapshot
	AverageMood    float64                 `json:"average_mood"`
	MoodTrend      string                  `json:"mood_trend"`
	TrendDirection insights.TrendDirection `json:"trend_direction"`
}

func toInsightResponse(s insights.Snapshot) insightResponse {
	return insightResponse{
		Snapshot:       s,
		AverageMood:    s.AverageMood(),
		MoodTrend:      s.MoodTrendLabel(),
		TrendDirection: s.TrendDirection(),
	}
}

type analysisResponse struct {
	insightResponse
	Analysis insights.Analysis `json:"analysis"`
}
