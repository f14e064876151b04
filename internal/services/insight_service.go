package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mina/internal/insights"
	"mina/internal/metrics"
	"mina/internal/models"
	"mina/internal/store"
)

// InsightService loads a user's entries from the provider and aggregates them.
type InsightService struct {
	provider store.EntryProvider
	now      func() time.Time
	logger   *zap.Logger
}

func NewInsightService(provider store.EntryProvider, logger *zap.Logger) *InsightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{provider: provider, now: time.Now, logger: logger}
}

// WithClock overrides "now", used for today's date and analysis timestamps.
func (s *InsightService) WithClock(now func() time.Time) *InsightService {
	s.now = now
	return s
}

// Today is the current calendar day in loc.
func (s *InsightService) Today(loc *time.Location) insights.Day {
	return insights.DayOf(s.now(), loc)
}

// Snapshot aggregates the user's entries for period, ending at today as seen in loc.
// A zero today means the current day.
func (s *InsightService) Snapshot(ctx context.Context, userID int, period insights.Period, today insights.Day, loc *time.Location) (insights.Snapshot, error) {
	start := time.Now()
	entries, err := s.provider.Entries(ctx, userID)
	if err != nil {
		metrics.SnapshotFailuresTotal.Inc()
		s.logger.Warn("load entries for insights failed", zap.Int("user_id", userID), zap.Error(err))
		return insights.Snapshot{}, fmt.Errorf("load entries: %w", err)
	}
	if today.IsZero() {
		today = s.Today(loc)
	}

	snap := insights.NewAggregator(loc).Aggregate(models.Records(entries), period, today)

	metrics.SnapshotsTotal.WithLabelValues(period.Label()).Inc()
	metrics.EntriesAggregated.Observe(float64(len(entries)))
	metrics.SnapshotDuration.WithLabelValues(period.Label()).Observe(time.Since(start).Seconds())
	return snap, nil
}

// Analysis returns a snapshot together with its written reading.
func (s *InsightService) Analysis(ctx context.Context, userID int, period insights.Period, today insights.Day, loc *time.Location) (insights.Snapshot, insights.Analysis, error) {
	snap, err := s.Snapshot(ctx, userID, period, today, loc)
	if err != nil {
		return insights.Snapshot{}, insights.Analysis{}, err
	}
	metrics.AnalysesTotal.Inc()
	return snap, insights.Narrate(snap, snap.TrendDirection(), s.now()), nil
}

// DailyStreak is the current streak ending at day.
func (s *InsightService) DailyStreak(ctx context.Context, userID int, day insights.Day, loc *time.Location) (models.DailyStreakMetric, error) {
	snap, err := s.Snapshot(ctx, userID, insights.PeriodWeek, day, loc)
	if err != nil {
		return models.DailyStreakMetric{}, err
	}
	return models.DailyStreakMetric{Date: snap.Today, Streak: snap.Streak.CurrentStreak}, nil
}
